package decoder

import (
	"fmt"
	"strings"

	"PageLens/types"
)

func flagNames(v uint16, table []types.FlagName) []string {
	var names []string
	for _, f := range table {
		if v&f.Mask != 0 {
			names = append(names, f.Name)
		}
	}
	return names
}

// dashFlags renders "pd_flags - A|B", or "pd_flags -" when no bit is set.
func dashFlags(field string, v uint16, table []types.FlagName) string {
	names := flagNames(v, table)
	if len(names) == 0 {
		return field + " -"
	}
	return field + " - " + strings.Join(names, "|")
}

// parenFlags renders "t_infomask ( A|B )", or "t_infomask ( )".
func parenFlags(field string, v uint16, table []types.FlagName) string {
	names := flagNames(v, table)
	if len(names) == 0 {
		return field + " ( )"
	}
	return field + " ( " + strings.Join(names, "|") + " )"
}

func lpFlagsName(flags int) string {
	switch flags {
	case types.LPUnused:
		return "LP_UNUSED"
	case types.LPNormal:
		return "LP_NORMAL"
	case types.LPRedirect:
		return "LP_REDIRECT"
	case types.LPDead:
		return "LP_DEAD"
	}
	return fmt.Sprintf("0x%02x", flags)
}
