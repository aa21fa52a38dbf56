package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
	"github.com/MarkoPoloResearchLab/admin_console/internal/services"
)

const (
	testClientRecordID    = "record-42"
	testClientCodeValue   = "CL-0042"
	testPaymentMethodName = "bank_transfer"
)

func TestClientListRenamesSortDirectionParameter(testingT *testing.T) {
	var observedQuery map[string][]string
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		observedQuery = request.URL.Query()
		_, _ = writer.Write([]byte(`{"success":true,"data":{"clients":[],"pagination":{"page":1,"limit":10,"total":0,"pages":0}}}`))
	})
	service := services.NewClientService(newServiceClient(testingT, handler))

	_, listErr := service.List(context.Background(), model.ClientListQuery{
		ListQuery: model.ListQuery{
			Page:      1,
			Limit:     10,
			SortBy:    "clientName",
			SortOrder: "desc",
		},
		BusinessType: "restaurant",
	})
	require.NoError(testingT, listErr)

	require.Equal(testingT, []string{"desc"}, observedQuery["order"])
	_, sortOrderSent := observedQuery["sortOrder"]
	require.False(testingT, sortOrderSent)
	require.Equal(testingT, []string{"clientName"}, observedQuery["sortBy"])
	require.Equal(testingT, []string{"restaurant"}, observedQuery["businessType"])
	_, serviceLevelSent := observedQuery["serviceLevel"]
	require.False(testingT, serviceLevelSent)
}

func TestClientLookupByClientCodeUsesDedicatedPath(testingT *testing.T) {
	var observedPath string
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		observedPath = request.URL.Path
		_, _ = writer.Write([]byte(`{"success":true,"data":{"client":{"clientId":"CL-0042"}}}`))
	})
	service := services.NewClientService(newServiceClient(testingT, handler))

	account, getErr := service.GetByClientID(context.Background(), testClientCodeValue)
	require.NoError(testingT, getErr)
	require.Equal(testingT, "/client/client-id/"+testClientCodeValue, observedPath)
	require.Equal(testingT, testClientCodeValue, account.ClientID)
}

func TestClientPaymentUpdateOmitsUnsetFields(testingT *testing.T) {
	var observedBody map[string]any
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		require.Equal(testingT, http.MethodPut, request.Method)
		require.Equal(testingT, "/client/"+testClientRecordID+"/payment", request.URL.Path)
		require.NoError(testingT, json.NewDecoder(request.Body).Decode(&observedBody))
		_, _ = writer.Write([]byte(`{"success":true,"data":{"client":{"clientId":"CL-0042"}}}`))
	})
	service := services.NewClientService(newServiceClient(testingT, handler))

	amount := decimal.NewFromFloat(149.50)
	paymentDate := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	method := testPaymentMethodName
	_, paymentErr := service.UpdatePayment(context.Background(), testClientRecordID, services.PaymentUpdate{
		Amount:        &amount,
		PaymentDate:   &paymentDate,
		PaymentMethod: &method,
	})
	require.NoError(testingT, paymentErr)

	require.Equal(testingT, "149.5", observedBody["amount"])
	require.Equal(testingT, testPaymentMethodName, observedBody["paymentMethod"])
	_, nextDateSent := observedBody["nextPaymentDate"]
	require.False(testingT, nextDateSent)
}

func TestClientDashboardStatsDecodesAggregates(testingT *testing.T) {
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		require.Equal(testingT, "/client/dashboard-stats", request.URL.Path)
		_, _ = writer.Write([]byte(`{"success":true,"data":{"totalClients":12,"activeClients":9,"monthlyRevenue":"4350.00","pendingDues":"320.00","upcomingPayments":[]}}`))
	})
	service := services.NewClientService(newServiceClient(testingT, handler))

	stats, statsErr := service.DashboardStats(context.Background())
	require.NoError(testingT, statsErr)
	require.Equal(testingT, 12, stats.TotalClients)
	require.True(testingT, stats.MonthlyRevenue.Equal(decimal.RequireFromString("4350.00")))
}
