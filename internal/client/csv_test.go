package client_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetrackhq/closetrack/internal/client"
	clientStore "github.com/closetrackhq/closetrack/internal/client/store"
)

func TestParseCSV_SnakeCaseHeader(t *testing.T) {
	data := strings.Join([]string{
		"first_name,last_name,email,client_type,labels",
		"Maria,Santos,maria@example.com,seller,vip; referral",
		"Sam,Okafor,,,",
	}, "\n")

	params, rowErrors, err := client.ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Empty(t, rowErrors)
	require.Len(t, params, 2)

	assert.Equal(t, "Maria", params[0].FirstName)
	assert.Equal(t, client.TypeSeller, params[0].Type)
	assert.Equal(t, []string{"vip", "referral"}, params[0].Labels)

	// Blank type and status fall back to the defaults.
	assert.Equal(t, client.TypeBuyer, params[1].Type)
	assert.Equal(t, client.StatusActive, params[1].Status)
}

func TestParseCSV_HumanReadableHeader(t *testing.T) {
	data := strings.Join([]string{
		"First Name,Last Name,Email Address,Cell Phone",
		"Maria,Santos,maria@example.com,555-0101",
	}, "\n")

	params, rowErrors, err := client.ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Empty(t, rowErrors)
	require.Len(t, params, 1)
	assert.Equal(t, "555-0101", params[0].MobilePhone)
}

func TestParseCSV_RowErrorsAreOneBased(t *testing.T) {
	data := strings.Join([]string{
		"first_name,last_name,email",
		"Maria,Santos,maria@example.com",
		",Santos,",
		"Sam,,not-an-email",
	}, "\n")

	params, rowErrors, err := client.ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, params, 1)

	require.Len(t, rowErrors, 3)
	assert.Equal(t, 3, rowErrors[0].Row)
	assert.Contains(t, rowErrors[0].Message, "firstName")
	assert.Equal(t, 4, rowErrors[1].Row)
	assert.Contains(t, rowErrors[1].Message, "lastName")
	assert.Equal(t, 4, rowErrors[2].Row)
	assert.Contains(t, rowErrors[2].Message, "email")
}

func TestParseCSV_InvalidEnum(t *testing.T) {
	data := strings.Join([]string{
		"first_name,last_name,type",
		"Maria,Santos,landlord",
	}, "\n")

	params, rowErrors, err := client.ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, params)
	require.Len(t, rowErrors, 1)
	assert.Contains(t, rowErrors[0].Message, "invalid type")
}

func TestParseCSV_SkipsBlankRows(t *testing.T) {
	data := strings.Join([]string{
		"first_name,last_name",
		"Maria,Santos",
		",",
		"",
	}, "\n")

	params, rowErrors, err := client.ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	assert.Len(t, params, 1)
}

func TestParseCSV_NoUsableHeader(t *testing.T) {
	data := "color,size\nred,10\n"

	_, _, err := client.ParseCSV(strings.NewReader(data))
	assert.Error(t, err)
}

func TestParseCSV_UTF8BOM(t *testing.T) {
	data := "\xEF\xBB\xBFfirst_name,last_name\nMaria,Muñoz\n"

	params, rowErrors, err := client.ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Empty(t, rowErrors)
	require.Len(t, params, 1)
	assert.Equal(t, "Muñoz", params[0].LastName)
}

func TestService_ImportCSV_PartialInsert(t *testing.T) {
	svc := client.NewService(clientStore.NewMemory())
	agentID := uuid.New()

	data := strings.Join([]string{
		"first_name,last_name",
		"Maria,Santos",
		",Broken",
		"Sam,Okafor",
	}, "\n")

	result, err := svc.ImportCSV(context.Background(), agentID, strings.NewReader(data))
	require.NoError(t, err)

	assert.Len(t, result.Created, 2)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)

	// Valid rows land even though one row failed.
	clients, err := svc.List(context.Background(), agentID)
	require.NoError(t, err)
	assert.Len(t, clients, 2)
}
