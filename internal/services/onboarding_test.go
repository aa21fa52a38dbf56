package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MarkoPoloResearchLab/admin_console/internal/model"
	"github.com/MarkoPoloResearchLab/admin_console/internal/services"
)

const (
	testOnboardingIDValue = "onboarding-3"
	testDistrictName      = "Colombo"
)

func TestOnboardingSaveStepTargetsStepPath(testingT *testing.T) {
	var observedMethod, observedPath string
	var observedBody map[string]any
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		observedMethod = request.Method
		observedPath = request.URL.Path
		require.NoError(testingT, json.NewDecoder(request.Body).Decode(&observedBody))
		_, _ = writer.Write([]byte(`{"success":true,"data":{"_id":"onboarding-3","completedSteps":[1,2,3]}}`))
	})
	service := services.NewOnboardingService(newServiceClient(testingT, handler))

	onboarding, stepErr := service.SaveStep(context.Background(), testOnboardingIDValue, 3, map[string]any{
		"planDetails": map[string]string{"selectedPlan": "premium"},
	})
	require.NoError(testingT, stepErr)

	require.Equal(testingT, http.MethodPut, observedMethod)
	require.Equal(testingT, "/onboarding/"+testOnboardingIDValue+"/step/3", observedPath)
	require.Contains(testingT, observedBody, "planDetails")
	require.Equal(testingT, []int{1, 2, 3}, onboarding.CompletedSteps)
}

func TestOnboardingSubmitAndStatusTransitions(testingT *testing.T) {
	var observedPaths []string
	var observedStatusBody map[string]string
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		observedPaths = append(observedPaths, request.Method+" "+request.URL.Path)
		if request.Method == http.MethodPut {
			require.NoError(testingT, json.NewDecoder(request.Body).Decode(&observedStatusBody))
		}
		_, _ = writer.Write([]byte(`{"success":true,"data":{"_id":"onboarding-3","status":"Under Review"}}`))
	})
	service := services.NewOnboardingService(newServiceClient(testingT, handler))

	_, submitErr := service.Submit(context.Background(), testOnboardingIDValue)
	require.NoError(testingT, submitErr)

	updated, statusErr := service.UpdateStatus(context.Background(), testOnboardingIDValue, model.OnboardingStatusUnderReview)
	require.NoError(testingT, statusErr)

	require.Equal(testingT, []string{
		"POST /onboarding/" + testOnboardingIDValue + "/submit",
		"PUT /onboarding/" + testOnboardingIDValue + "/status",
	}, observedPaths)
	require.Equal(testingT, model.OnboardingStatusUnderReview, observedStatusBody["status"])
	require.Equal(testingT, model.OnboardingStatusUnderReview, updated.Status)
}

func TestOnboardingDistrictsDecodeBareList(testingT *testing.T) {
	handler := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		require.Equal(testingT, "/onboarding/districts", request.URL.Path)
		_, _ = writer.Write([]byte(`{"success":true,"data":["Colombo","Gampaha","Kandy"]}`))
	})
	service := services.NewOnboardingService(newServiceClient(testingT, handler))

	districts, districtsErr := service.Districts(context.Background())
	require.NoError(testingT, districtsErr)
	require.Len(testingT, districts, 3)
	require.Equal(testingT, testDistrictName, districts[0])
}
