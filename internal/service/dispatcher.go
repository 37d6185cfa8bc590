// README: Smart path. Turns one free-text query into intent records via the model and merges the per-record replies.
package service

import (
	"context"
	"strings"

	"atlas/internal/ai"
	"atlas/internal/geo"
	"atlas/internal/intent"
	"atlas/internal/logger"
	"atlas/internal/metrics"
)

const (
	MsgProcessingError   = "An error occurred while processing your request."
	MsgNothingProduced   = "Sorry, I couldn't process your request. Please try rephrasing."
	MsgWeatherPlace      = "Please specify the location for the weather information."
	MsgRouteEndpoints    = "Please specify both origin and destination for the route."
	MsgChargingPlace     = "Please specify the location to find nearby charging stations."
	MsgHotelPlace        = "Please specify the location to find hotels."
	MsgPOICategory       = "Please specify what type of place you're looking for."
	MsgMediaDefault      = "Playing your requested media shortly."
	MsgNoAnswer          = "Sorry, I don't have an answer for that."
	MsgGenerationFailed  = "I had trouble generating a response. Please try again."
	generalPromptPrefix  = "Answer concisely:\n"
	replySeparator       = "\n\n"
	maxLoggedPayloadSize = 200
)

// IntentExtractor returns the model's raw answer to the extraction prompt.
type IntentExtractor interface {
	Extract(ctx context.Context, query string) (string, error)
}

// WeatherLookup renders a current-weather reply; it never fails.
type WeatherLookup interface {
	Summary(ctx context.Context, place string) string
}

// RouteLookup renders a driving-route reply; it never fails.
type RouteLookup interface {
	Summary(ctx context.Context, from, to string) string
}

// Outcome is the result of one smart query.
type Outcome struct {
	Reply string
	// Intents is the number of decoded records, including skipped ones.
	Intents int
	// Failed is set when extraction or decoding failed.
	Failed bool
}

// Dispatcher routes each extracted intent to its handler in array order.
// It holds no per-request state and is safe for concurrent use.
type Dispatcher struct {
	extractor IntentExtractor
	generator ai.TextGenerator
	weather   WeatherLookup
	route     RouteLookup
	log       logger.Logger
}

func NewDispatcher(extractor IntentExtractor, generator ai.TextGenerator, weather WeatherLookup, route RouteLookup, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		extractor: extractor,
		generator: generator,
		weather:   weather,
		route:     route,
		log:       log.With(map[string]interface{}{"component": "dispatcher"}),
	}
}

// Handle answers query. It always returns a reply.
func (d *Dispatcher) Handle(ctx context.Context, query string) string {
	return d.Dispatch(ctx, query).Reply
}

// Dispatch is Handle with bookkeeping for callers that record history.
func (d *Dispatcher) Dispatch(ctx context.Context, query string) Outcome {
	// 1. Ask the model for intent records
	raw, err := d.extractor.Extract(ctx, query)
	if err != nil {
		metrics.DispatchFailures.WithLabelValues("extract").Inc()
		d.log.WithError(err).Error("intent extraction failed", nil)
		return Outcome{Reply: MsgProcessingError, Failed: true}
	}

	// 2. Normalize and decode; a bad payload fails the whole request
	records, err := intent.Decode(intent.Sanitize(raw))
	if err != nil {
		metrics.DispatchFailures.WithLabelValues("decode").Inc()
		d.log.WithError(err).Error("intent decode failed", map[string]interface{}{
			"raw": truncate(raw, maxLoggedPayloadSize),
		})
		return Outcome{Reply: MsgProcessingError, Failed: true}
	}

	// 3. Dispatch sequentially, keeping order
	parts := make([]string, 0, len(records))
	for _, rec := range records {
		if out := d.dispatchOne(ctx, query, rec); out != "" {
			parts = append(parts, out)
		}
	}

	reply := strings.TrimSpace(strings.Join(parts, replySeparator))
	if reply == "" {
		reply = MsgNothingProduced
	}
	return Outcome{Reply: reply, Intents: len(records)}
}

func (d *Dispatcher) dispatchOne(ctx context.Context, query string, rec intent.Record) string {
	kind, ok := rec.Kind()
	if !ok {
		metrics.IntentsDispatched.WithLabelValues("unknown", metrics.OutcomeSkipped).Inc()
		return ""
	}

	switch kind {
	case intent.KindWeather:
		place, ok := intent.Value(rec.Place)
		if !ok {
			return clarify(kind, MsgWeatherPlace)
		}
		return handled(kind, d.weather.Summary(ctx, place))

	case intent.KindRoute:
		from, okFrom := intent.Value(rec.OriginPlace)
		to, okTo := intent.Value(rec.DestinationPlace)
		if !okFrom || !okTo {
			return clarify(kind, MsgRouteEndpoints)
		}
		return handled(kind, d.route.Summary(ctx, from, to))

	case intent.KindCharging:
		place, ok := intent.Value(rec.Place)
		if !ok {
			return clarify(kind, MsgChargingPlace)
		}
		return handled(kind, geo.POIReply("charging station", place))

	case intent.KindHotel:
		place, ok := intent.Value(rec.Place)
		if !ok {
			return clarify(kind, MsgHotelPlace)
		}
		return handled(kind, geo.POIReply("hotel", place))

	case intent.KindPOISearch:
		category, ok := intent.Value(rec.POICategory)
		if !ok {
			return clarify(kind, MsgPOICategory)
		}
		place, _ := intent.Value(rec.Place)
		return handled(kind, geo.POIReply(category, place))

	case intent.KindMediaPlay:
		if answer, ok := intent.Value(rec.FreeformAnswer); ok {
			return handled(kind, answer)
		}
		return handled(kind, MsgMediaDefault)

	case intent.KindGeneral:
		if answer, ok := intent.Value(rec.FreeformAnswer); ok {
			return handled(kind, answer)
		}
		return handled(kind, d.answerGeneral(ctx, query))
	}

	metrics.IntentsDispatched.WithLabelValues(string(kind), metrics.OutcomeSkipped).Inc()
	return ""
}

// answerGeneral asks the model directly. Failures stay local to this record.
func (d *Dispatcher) answerGeneral(ctx context.Context, query string) string {
	text, err := d.generator.Generate(ctx, generalPromptPrefix+query)
	if err != nil {
		metrics.CollaboratorFailures.WithLabelValues("generator", "error").Inc()
		d.log.WithError(err).Warn("general answer failed", nil)
		return MsgGenerationFailed
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return MsgNoAnswer
	}
	return text
}

func clarify(kind intent.Kind, msg string) string {
	metrics.IntentsDispatched.WithLabelValues(string(kind), metrics.OutcomeClarification).Inc()
	return msg
}

func handled(kind intent.Kind, reply string) string {
	metrics.IntentsDispatched.WithLabelValues(string(kind), metrics.OutcomeHandled).Inc()
	return reply
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
