package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/vigenplay/internal/model"
)

// Defaults are the settings used when neither a flag nor the file sets a value.
type Defaults struct {
	TimeBudget time.Duration
	Restarts   int
	Iterations int
	Top        int
	LogLevel   string
	LogOutput  string
}

// ApplyBreak copies the values set in the file into cfg, except for the
// fields whose flag was given on the command line.
func ApplyBreak(cfg *model.BreakConfig, file BreakConfig, changed func(flag string) bool) error {
	if file.TimeBudget != nil && !changed("budget") {
		d, err := time.ParseDuration(*file.TimeBudget)
		if err != nil {
			return fmt.Errorf("invalid time-budget in config: %w", err)
		}
		cfg.TimeBudget = d
	}
	apply(&cfg.Restarts, file.Restarts, changed("restarts"))
	apply(&cfg.Iterations, file.Iterations, changed("iterations"))
	apply(&cfg.Workers, file.Workers, changed("workers"))
	apply(&cfg.Top, file.Top, changed("top"))
	apply(&cfg.Seed, file.Seed, changed("seed"))
	apply(&cfg.Dictionary, file.Dictionary, changed("dictionary"))
	return nil
}

func apply[T any](target *T, value *T, flagChanged bool) {
	if value == nil || flagChanged {
		return
	}
	*target = *value
}

var validate = validator.New()

// ValidateBreak checks the effective attack settings.
func ValidateBreak(cfg model.BreakConfig) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid %s: %v does not satisfy %s", fieldFlag(fe.Field()), fe.Value(), constraint(fe))
		}
		return fmt.Errorf("invalid break settings: %w", err)
	}
	return nil
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

func fieldFlag(field string) string {
	switch field {
	case "TimeBudget":
		return "--budget"
	default:
		return "--" + strings.ToLower(field)
	}
}
