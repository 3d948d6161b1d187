package util

import (
	"encoding/json"
	"io"
	"slices"

	"github.com/gin-gonic/gin"

	"taskapp/internal/core/domain"
)

func ParamsToMap[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBindJSON(&params); err != nil {
		return params, err
	}

	return params, nil
}

// PartialParams binds a partial-update body. The raw keys are checked
// against the allow-set before typed binding, so a request naming any
// other field is rejected whole. An empty object binds to zero values
// and leaves the record as it is.
func PartialParams[T any](c *gin.Context, allowed ...string) (T, error) {
	var params T

	body, err := io.ReadAll(c.Request.Body)

	if err != nil {
		return params, err
	}

	raw := map[string]json.RawMessage{}

	if err := json.Unmarshal(body, &raw); err != nil {
		return params, domain.ErrMalformedBody
	}

	for key := range raw {
		if !slices.Contains(allowed, key) {
			return params, domain.ErrInvalidUpdateField
		}
	}

	if err := json.Unmarshal(body, &params); err != nil {
		return params, domain.ErrMalformedBody
	}

	return params, nil
}
