package negotiatecmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-langneg/internal/negotiation"
)

const (
	negotiateMessageType = "langneg.negotiate"
	maxTagLength         = 128
)

// NegotiateLocalesCommand asks for the available locales that best serve the
// requested ones. An empty Strategy uses the handler's configured default; an
// empty Default means no default locale is appended.
type NegotiateLocalesCommand struct {
	// Requested lists the caller's locales, most preferred first.
	Requested []string `json:"requested"`
	// Available lists the locales the application can serve.
	Available []string `json:"available"`
	Default   string   `json:"default,omitempty"`
	Strategy  string   `json:"strategy,omitempty"`
}

// Type implements command.Message.
func (NegotiateLocalesCommand) Type() string { return negotiateMessageType }

// Validate bounds tag lengths and checks the strategy name. Tag syntax is
// not enforced here; the engine drops or tolerates malformed tags.
func (cmd NegotiateLocalesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Requested, validation.Each(validation.Length(0, maxTagLength))),
		validation.Field(&cmd.Available, validation.Each(validation.Length(0, maxTagLength))),
		validation.Field(&cmd.Default, validation.Length(0, maxTagLength)),
		validation.Field(&cmd.Strategy, validation.By(func(value any) error {
			name, _ := value.(string)
			if name == "" {
				return nil
			}
			if _, err := negotiation.ParseStrategy(name); err != nil {
				return validation.NewError("langneg.negotiate.strategy_invalid", "strategy must be filtering, matching or lookup")
			}
			return nil
		})),
	)
}
