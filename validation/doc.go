// Package validation provides input validation for mailkit commands and
// configuration.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// the right fit for configuration structs; the programmatic form suits
// command-line input.
//
// # Struct Tag Validation
//
//	type AppConfig struct {
//	    Sender string `validate:"omitempty,min=1"`
//	    Format string `validate:"omitempty,oneof=text json"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Pattern("pipeline", name, `^[A-Za-z0-9._-]+$`)
//	if err := v.Validate(); err != nil {
//	    return err
//	}
package validation
