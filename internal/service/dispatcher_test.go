package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/internal/ai"
	"atlas/internal/logger"
)

type stubExtractor struct {
	raw   string
	err   error
	query string
}

func (s *stubExtractor) Extract(_ context.Context, query string) (string, error) {
	s.query = query
	return s.raw, s.err
}

type recordingWeather struct{ places []string }

func (w *recordingWeather) Summary(_ context.Context, place string) string {
	w.places = append(w.places, place)
	return "weather in " + place
}

type recordingRoute struct{ calls [][2]string }

func (r *recordingRoute) Summary(_ context.Context, from, to string) string {
	r.calls = append(r.calls, [2]string{from, to})
	return "route " + from + " -> " + to
}

type dispatcherFixture struct {
	extractor *stubExtractor
	weather   *recordingWeather
	route     *recordingRoute
	prompts   []string
	genReply  string
	genErr    error
	d         *Dispatcher
}

func newDispatcherFixture(t *testing.T, raw string) *dispatcherFixture {
	t.Helper()
	f := &dispatcherFixture{
		extractor: &stubExtractor{raw: raw},
		weather:   &recordingWeather{},
		route:     &recordingRoute{},
	}
	gen := ai.GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		f.prompts = append(f.prompts, prompt)
		return f.genReply, f.genErr
	})
	f.d = NewDispatcher(f.extractor, gen, f.weather, f.route, logger.NewTestLogger(t))
	return f
}

func TestDispatcherMissingPlaceClarifies(t *testing.T) {
	f := newDispatcherFixture(t, `[{"intent":"weather","place":null}]`)

	got := f.d.Handle(context.Background(), "what's the weather")
	assert.Equal(t, MsgWeatherPlace, got)
	assert.Empty(t, f.weather.places)
}

func TestDispatcherKeepsOrderAndJoins(t *testing.T) {
	f := newDispatcherFixture(t, `[{"intent":"weather","place":"Pune"},{"intent":"route","fromPlace":"Mumbai","toPlace":"Pune"}]`)

	out := f.d.Dispatch(context.Background(), "weather in Pune and route from Mumbai to Pune")
	assert.Equal(t, "weather in Pune\n\nroute Mumbai -> Pune", out.Reply)
	assert.Equal(t, 2, out.Intents)
	assert.False(t, out.Failed)
	assert.Equal(t, []string{"Pune"}, f.weather.places)
	assert.Equal(t, [][2]string{{"Mumbai", "Pune"}}, f.route.calls)
	assert.Equal(t, "weather in Pune and route from Mumbai to Pune", f.extractor.query)
}

func TestDispatcherEmptyArray(t *testing.T) {
	f := newDispatcherFixture(t, `[]`)
	assert.Equal(t, MsgNothingProduced, f.d.Handle(context.Background(), "hmm"))
}

func TestDispatcherFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  error
	}{
		{name: "garbage", raw: "I think you want the weather"},
		{name: "object instead of array", raw: `{"intent":"weather","place":"Pune"}`},
		{name: "unknown field", raw: `[{"intent":"weather","place":"Pune","mood":"happy"}]`},
		{name: "type mismatch", raw: `[{"intent":"weather","place":42}]`},
		{name: "empty", raw: ``},
		{name: "extractor error", err: errors.New("quota exceeded")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDispatcherFixture(t, tt.raw)
			f.extractor.err = tt.err

			out := f.d.Dispatch(context.Background(), "weather in Pune")
			assert.Equal(t, MsgProcessingError, out.Reply)
			assert.True(t, out.Failed)
			assert.Empty(t, f.weather.places)
		})
	}
}

func TestDispatcherAcceptsFencedPayload(t *testing.T) {
	f := newDispatcherFixture(t, "```json\n[{\"intent\":\" Hotel \",\"place\":\"Goa\"}]\n```")

	got := f.d.Handle(context.Background(), "hotels in goa")
	assert.Equal(t, "Here are some hotel near Goa:\nhttps://www.google.com/maps/search/hotel+near+Goa", got)
}

func TestDispatcherSkipsUnknownKinds(t *testing.T) {
	f := newDispatcherFixture(t, `[{"intent":"flight","place":"Paris"},null,{"intent":"media_play","response":"Playing jazz."}]`)

	out := f.d.Dispatch(context.Background(), "book a flight and play jazz")
	assert.Equal(t, "Playing jazz.", out.Reply)
	assert.Equal(t, 3, out.Intents)
}

func TestDispatcherOnlyUnknownKinds(t *testing.T) {
	f := newDispatcherFixture(t, `[{"intent":"flight"},{"intent":null}]`)
	assert.Equal(t, MsgNothingProduced, f.d.Handle(context.Background(), "book a flight"))
}

func TestDispatcherPerKind(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "route missing origin", raw: `[{"intent":"route","fromPlace":"  ","toPlace":"Pune"}]`, want: MsgRouteEndpoints},
		{name: "charging", raw: `[{"intent":"charging","place":"Pune"}]`, want: "Here are some charging station near Pune:\nhttps://www.google.com/maps/search/charging+station+near+Pune"},
		{name: "charging missing place", raw: `[{"intent":"charging"}]`, want: MsgChargingPlace},
		{name: "hotel missing place", raw: `[{"intent":"hotel","place":""}]`, want: MsgHotelPlace},
		{name: "poi with place", raw: `[{"intent":"poi_search","poiType":"restaurant","place":"Pune"}]`, want: "Here are some restaurant near Pune:\nhttps://www.google.com/maps/search/restaurant+near+Pune"},
		{name: "poi without place", raw: `[{"intent":"poi_search","poiType":"museum","place":null}]`, want: "Here are some museum:\nhttps://www.google.com/maps/search/museum"},
		{name: "poi missing type", raw: `[{"intent":"poi_search","place":"Pune"}]`, want: MsgPOICategory},
		{name: "media default", raw: `[{"intent":"media_play"}]`, want: MsgMediaDefault},
		{name: "general verbatim", raw: `[{"intent":"general","response":"Paris is the capital of France."}]`, want: "Paris is the capital of France."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDispatcherFixture(t, tt.raw)
			assert.Equal(t, tt.want, f.d.Handle(context.Background(), "q"))
			assert.Empty(t, f.prompts)
		})
	}
}

func TestDispatcherGeneralFallback(t *testing.T) {
	f := newDispatcherFixture(t, `[{"intent":"general","response":null}]`)
	f.genReply = "  Forty-two.\n"

	got := f.d.Handle(context.Background(), "meaning of life?")
	assert.Equal(t, "Forty-two.", got)
	require.Len(t, f.prompts, 1)
	assert.Equal(t, "Answer concisely:\nmeaning of life?", f.prompts[0])
}

func TestDispatcherGeneralFallbackEmpty(t *testing.T) {
	f := newDispatcherFixture(t, `[{"intent":"general"}]`)
	f.genReply = "   "
	assert.Equal(t, MsgNoAnswer, f.d.Handle(context.Background(), "?"))
}

func TestDispatcherGeneralFailureKeepsSiblings(t *testing.T) {
	f := newDispatcherFixture(t, `[{"intent":"general"},{"intent":"weather","place":"Oslo"}]`)
	f.genErr = errors.New("boom")

	got := f.d.Handle(context.Background(), "tell me a joke and the weather in Oslo")
	assert.Equal(t, MsgGenerationFailed+"\n\nweather in Oslo", got)
}
