package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/verte-zerg/dictstat/internal/model"
)

// Defaults for a fresh install.
const (
	DefaultDailyGoal      = 500
	DefaultWeeklyGoal     = 2500
	DefaultTopWords       = 40
	DefaultRefreshSeconds = 5
	DefaultLogLevel       = "info"
)

// Defaults returns the settings used when neither config nor flags set a value.
func Defaults() model.Config {
	return model.Config{
		HistoryPath:    DefaultHistoryPath(),
		Watch:          true,
		RefreshSeconds: DefaultRefreshSeconds,
		DailyGoal:      DefaultDailyGoal,
		WeeklyGoal:     DefaultWeeklyGoal,
		TopWords:       DefaultTopWords,
		LogLevel:       DefaultLogLevel,
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
	translator   ut.Translator
)

func validatorInstance() (*validator.Validate, ut.Translator) {
	validateOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		translator, _ = uni.GetTranslator("en")

		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if key := fld.Tag.Get("key"); key != "" {
				return key
			}
			return fld.Name
		})
		_ = en_translations.RegisterDefaultTranslations(validate, translator)
	})
	return validate, translator
}

// Validate checks cfg and reports every invalid setting in one error.
func Validate(cfg model.Config) error {
	v, trans := validatorInstance()
	err := v.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(trans))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Location returns the zone named by cfg.Timezone, or time.Local.
func Location(cfg model.Config) (*time.Location, error) {
	if cfg.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Timezone, err)
	}
	return loc, nil
}
