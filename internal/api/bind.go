package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sealjuli/Library/pkg/validation"
)

const inputKey = "validated_input"

var errBodyNotObject = validation.FieldError{
	Field:    "body",
	Location: validation.Body,
	Message:  "Request body must be a JSON object.",
}

// validated evaluates rules before the route handler runs and aborts with
// 400 and the list of violations when any rule fails.
func (h *Handler) validated(rules validation.Rules) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, err := readInput(c, rules)
		if err != nil {
			respond(c, http.StatusBadRequest, gin.H{"errors": []validation.FieldError{errBodyNotObject}})
			c.Abort()
			return
		}

		if errs := validation.Validate(rules, in); len(errs) > 0 {
			respond(c, http.StatusBadRequest, gin.H{"errors": errs})
			c.Abort()
			return
		}

		c.Set(inputKey, in)
		c.Next()
	}
}

// input returns the values checked by validated.
func input(c *gin.Context) validation.Input {
	in, _ := c.Get(inputKey)
	v, _ := in.(validation.Input)
	return v
}

func readInput(c *gin.Context, rules validation.Rules) (validation.Input, error) {
	in := validation.Input{
		Params: make(map[string]string, len(c.Params)),
		Query:  make(map[string]string),
	}
	for _, p := range c.Params {
		in.Params[p.Key] = p.Value
	}
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			in.Query[k] = v[0]
		}
	}

	if rules.Has(validation.Body) {
		body, err := decodeBody(c.Request.Body)
		if err != nil {
			return in, err
		}
		in.Body = body
	}
	return in, nil
}

// decodeBody flattens a JSON object into raw string values. Numbers keep
// their literal form; null, objects and arrays count as absent.
func decodeBody(r io.Reader) (map[string]string, error) {
	out := make(map[string]string)
	if r == nil {
		return out, nil
	}

	raw := make(map[string]any)
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		return nil, err
	}

	for k, v := range raw {
		switch val := v.(type) {
		case string:
			out[k] = val
		case json.Number:
			out[k] = val.String()
		case bool:
			out[k] = strconv.FormatBool(val)
		}
	}
	return out, nil
}
