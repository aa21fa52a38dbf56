package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
)

func TestPaymentDetailsComputeTotal(testingT *testing.T) {
	testCases := []struct {
		name        string
		payment     model.PaymentDetails
		expectTotal string
	}{
		{
			name:        "all zero",
			payment:     model.PaymentDetails{},
			expectTotal: "0",
		},
		{
			name: "plan only",
			payment: model.PaymentDetails{
				PlanPrice: decimal.RequireFromString("4999"),
			},
			expectTotal: "4999",
		},
		{
			name: "every component",
			payment: model.PaymentDetails{
				PlanPrice:          decimal.RequireFromString("4999"),
				ProjectPrice:       decimal.RequireFromString("15000"),
				HostingYearlyPrice: decimal.RequireFromString("2400"),
				AdditionalCosts: model.AdditionalCosts{
					Constant:    decimal.RequireFromString("500"),
					Hosting:     decimal.RequireFromString("100.50"),
					Domain:      decimal.RequireFromString("899"),
					Storage:     decimal.RequireFromString("250"),
					Maintenance: decimal.RequireFromString("1200"),
					WebsiteCost: decimal.RequireFromString("7500"),
				},
			},
			expectTotal: "32848.5",
		},
	}

	for _, testCase := range testCases {
		testingT.Run(testCase.name, func(testingT *testing.T) {
			computedTotal := testCase.payment.ComputeTotal()
			require.True(testingT, computedTotal.Equal(decimal.RequireFromString(testCase.expectTotal)),
				"expected %s, computed %s", testCase.expectTotal, computedTotal.String())
		})
	}
}

func TestAdminIsSuperAdmin(testingT *testing.T) {
	require.True(testingT, model.Admin{Role: model.RoleSuperAdmin}.IsSuperAdmin())
	require.False(testingT, model.Admin{Role: model.RoleAdmin}.IsSuperAdmin())
	require.False(testingT, model.Admin{}.IsSuperAdmin())
}
