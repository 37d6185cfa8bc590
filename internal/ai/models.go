package ai

// DefaultModel is used when ModelOptions.Name is empty.
const DefaultModel = "gemini-2.0-flash"

// ModelOptions tunes the generative model.
type ModelOptions struct {
	Name        string
	Temperature float32
}

func (o ModelOptions) name() string {
	if o.Name == "" {
		return DefaultModel
	}
	return o.Name
}
