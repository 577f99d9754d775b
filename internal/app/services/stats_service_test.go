package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/eduadmin/internal/app/models"
)

func TestSubscriptionStats_Tally(t *testing.T) {
	studentStore := newFakeStudentStore()
	service := NewStatsService(studentStore)

	for i := 0; i < 3; i++ {
		studentStore.add(models.Student{AuthID: "auth0|p", StudentID: "STU", Role: "student", IsPaid: true})
	}
	studentStore.add(models.Student{AuthID: "auth0|u", StudentID: "STU", Role: "student", IsPaid: false})

	stats, err := service.SubscriptionStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Paid)
	assert.Equal(t, int64(1), stats.Unpaid)
	assert.Equal(t, int64(4), stats.Total)
}

func TestChartStats_AssemblesAllSeries(t *testing.T) {
	studentStore := newFakeStudentStore()
	service := NewStatsService(studentStore)

	classID := int64(2)
	studentStore.add(models.Student{
		AuthID: "auth0|a", StudentID: "STU", Role: "student",
		ClassID: &classID, ClassName: "Class 10", IsPaid: true,
	})

	resp, err := service.ChartStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Subscription.Total)
	require.Len(t, resp.ByClass, 1)
	assert.Equal(t, "Class 10", resp.ByClass[0].ClassName)
	require.Len(t, resp.Registrations, 1)
	assert.Equal(t, int64(1), resp.Registrations[0].Count)
}
