package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/finhr/backoffice/internal/core/ports"
	"github.com/finhr/backoffice/internal/core/workflows"
)

// resourceInfo maps a CLI resource name to its API path and action set.
type resourceInfo struct {
	path      string
	gated     []ports.Action
	immediate []ports.Action
}

var resourceCatalogue = map[string]resourceInfo{
	"banks": {
		path:      workflows.BanksPath,
		gated:     []ports.Action{ports.ActionDelete},
		immediate: []ports.Action{ports.ActionToggleStatus},
	},
	"currencies": {
		path:      workflows.CurrenciesPath,
		gated:     []ports.Action{ports.ActionDelete},
		immediate: []ports.Action{ports.ActionToggleStatus},
	},
	"customers": {
		path:      workflows.CustomersPath,
		gated:     []ports.Action{ports.ActionDelete},
		immediate: []ports.Action{ports.ActionToggleStatus},
	},
	"journal-entries": {
		path:  workflows.JournalEntriesPath,
		gated: []ports.Action{ports.ActionDelete, ports.ActionPost},
	},
	"receipt-vouchers": {
		path:  workflows.VouchersPath,
		gated: []ports.Action{ports.ActionDelete, ports.ActionAccept},
	},
	"financial-periods": {
		path:  workflows.PeriodsPath,
		gated: []ports.Action{ports.ActionDelete, ports.ActionClose},
	},
	"shifts": {
		path:      workflows.ShiftsPath,
		gated:     []ports.Action{ports.ActionDelete},
		immediate: []ports.Action{ports.ActionToggleStatus},
	},
	"leave-types": {
		path:      workflows.LeaveTypesPath,
		gated:     []ports.Action{ports.ActionDelete},
		immediate: []ports.Action{ports.ActionToggleStatus},
	},
}

func lookupResource(name string) (resourceInfo, error) {
	info, ok := resourceCatalogue[name]
	if !ok {
		names := make([]string, 0, len(resourceCatalogue))
		for n := range resourceCatalogue {
			names = append(names, n)
		}
		sort.Strings(names)
		return resourceInfo{}, fmt.Errorf("unknown resource %q (known: %s)", name, strings.Join(names, ", "))
	}
	return info, nil
}
