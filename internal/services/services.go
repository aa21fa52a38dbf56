// Package services translates console intents into backend REST calls, one
// service per record family. Every function propagates backend errors to its
// caller unchanged: no retries, no caching, no suppression. The screens own
// user notification and navigation fallback.
package services

import (
	"net/url"
	"strconv"

	"github.com/MarkoPoloResearchLab/admin_console/internal/backend"
	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
)

const (
	queryParameterPage         = "page"
	queryParameterLimit        = "limit"
	queryParameterStatus       = "status"
	queryParameterSearch       = "search"
	queryParameterSortBy       = "sortBy"
	queryParameterSortOrder    = "sortOrder"
	queryParameterOrder        = "order"
	queryParameterBusinessType = "businessType"
	queryParameterPriority     = "priority"
	queryParameterServiceLevel = "serviceLevel"
	queryParameterSalesRep     = "assignedSalesRep"
	queryParameterDNSStatus    = "dnsStatus"
	queryParameterBillingCycle = "billingCycle"
	queryParameterRole         = "role"
)

// listQueryValues converts the shared list parameters into query values,
// omitting anything unset.
func listQueryValues(query model.ListQuery) url.Values {
	values := url.Values{}
	if query.Page > 0 {
		values.Set(queryParameterPage, strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		values.Set(queryParameterLimit, strconv.Itoa(query.Limit))
	}
	backend.AppendQueryValue(values, queryParameterStatus, query.Status)
	backend.AppendQueryValue(values, queryParameterSearch, query.Search)
	backend.AppendQueryValue(values, queryParameterSortBy, query.SortBy)
	backend.AppendQueryValue(values, queryParameterSortOrder, query.SortOrder)
	return values
}
