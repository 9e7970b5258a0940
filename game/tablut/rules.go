package tablut

// KingCaptureRule selects how the king is captured.
type KingCaptureRule int

const (
	// KingCaptureThrone requires the king to be enclosed on four sides while on
	// or next to the throne (the empty throne counts as hostile) and captures
	// it like a soldier anywhere else.
	KingCaptureThrone KingCaptureRule = iota
	// KingCaptureStrict always requires four hostile sides.
	KingCaptureStrict
)

func (r KingCaptureRule) String() string {
	if r == KingCaptureStrict {
		return "strict"
	}
	return "throne"
}

type Rules struct {
	KingCapture KingCaptureRule
	// RepetitionLimit is the number of times a position may be reached before
	// the game is drawn. Zero disables the rule.
	RepetitionLimit int
	Weights         Weights
}

func DefaultRules() Rules {
	return Rules{
		KingCapture:     KingCaptureThrone,
		RepetitionLimit: 2,
		Weights:         DefaultWeights(),
	}
}

type Option func(r *Rules)

func WithKingCapture(rule KingCaptureRule) Option {
	return func(r *Rules) {
		r.KingCapture = rule
	}
}

func WithRepetitionLimit(limit int) Option {
	return func(r *Rules) {
		if limit >= 0 {
			r.RepetitionLimit = limit
		}
	}
}

func WithWeights(w Weights) Option {
	return func(r *Rules) {
		r.Weights = w
	}
}
