package country

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinForecastDays = 1
	MaxForecastDays = 5

	// SlotsPerDay is the number of 3-hour forecast slots in a day.
	SlotsPerDay = 8
)

var validate = validator.New()

type daysParam struct {
	Days int `validate:"min=1,max=5"`
}

// ParseDays parses and range-checks the graph endpoint's n parameter.
func ParseDays(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	n, err := strconv.Atoi(trimmed)
	if errors.Is(err, strconv.ErrRange) {
		return 0, outOfRange(trimmed)
	}
	if err != nil {
		return 0, &InvalidArgumentError{
			Param:  "n",
			Reason: ReasonNotANumber,
			Message: fmt.Sprintf("the parameter n: %s is not a number. Should be an integer between %d and %d.",
				raw, MinForecastDays, MaxForecastDays),
		}
	}

	if err := validate.Struct(daysParam{Days: n}); err != nil {
		return 0, outOfRange(strconv.Itoa(n))
	}

	return n, nil
}

func outOfRange(days string) error {
	return &InvalidArgumentError{
		Param:  "n",
		Reason: ReasonOutOfRange,
		Message: fmt.Sprintf("the given amount of days %s is invalid. Should be an integer between %d and %d.",
			days, MinForecastDays, MaxForecastDays),
	}
}
