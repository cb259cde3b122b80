package fields

import (
	"errors"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// constraint is one validator tag checked independently so every failing
// rule is reported.
type constraint struct {
	code   string
	tag    string
	params map[string]string
}

func checkConstraints(value any, spec Spec, constraints []constraint) *ValidationError {
	var out *ValidationError
	v := validatorInstance()
	for _, c := range constraints {
		err := v.Var(value, c.tag)
		if err == nil {
			continue
		}
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			continue
		}
		text := FormatMessage(spec.Message(c.code), c.params)
		if out == nil {
			out = NewError(c.code, text)
			continue
		}
		out.Add(c.code, text)
	}
	return out
}

func lengthConstraints(minLength, maxLength, count int) []constraint {
	var out []constraint
	if minLength > 0 {
		out = append(out, constraint{
			code:   CodeMinLength,
			tag:    "min=" + strconv.Itoa(minLength),
			params: map[string]string{"limit": strconv.Itoa(minLength), "count": strconv.Itoa(count)},
		})
	}
	if maxLength > 0 {
		out = append(out, constraint{
			code:   CodeMaxLength,
			tag:    "max=" + strconv.Itoa(maxLength),
			params: map[string]string{"limit": strconv.Itoa(maxLength), "count": strconv.Itoa(count)},
		})
	}
	return out
}

func formatConstraints(format string) []constraint {
	switch format {
	case FormatEmail:
		return []constraint{{code: CodeEmail, tag: "email"}}
	case FormatURL:
		return []constraint{{code: CodeURL, tag: "url"}}
	default:
		return nil
	}
}

func boundConstraints(minValue, maxValue *int) []constraint {
	var out []constraint
	if minValue != nil {
		limit := strconv.Itoa(*minValue)
		out = append(out, constraint{code: CodeMinValue, tag: "gte=" + limit, params: map[string]string{"limit": limit}})
	}
	if maxValue != nil {
		limit := strconv.Itoa(*maxValue)
		out = append(out, constraint{code: CodeMaxValue, tag: "lte=" + limit, params: map[string]string{"limit": limit}})
	}
	return out
}
