package shared

import (
	"strconv"
	"strings"

	"tickoff/shared/dto"

	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

// BuildCacheKey joins the prefix and parts with ':'. Empty parts are kept so
// the position of every part stays stable.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// FilterByOwner scopes FilterByID to the rows of one owner.
func FilterByOwner(id any, fieldID string, owner any, fieldOwner, table string) dto.FilterGroup {
	return FilterByID(id, fieldID, table).Add(dto.Filter{
		Field:    fieldOwner,
		Value:    owner,
		Operator: dto.FilterOperatorEq,
		Table:    table,
	})
}
