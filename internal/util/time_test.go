package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTimezoneValid(t *testing.T) {
	tp := &TimeProvider{}
	require.NoError(t, tp.SetTimezone("Asia/Shanghai"))
	assert.Equal(t, "Asia/Shanghai", tp.Location().String())

	require.NoError(t, tp.SetTimezone("UTC"))
	assert.Equal(t, "UTC", tp.Location().String())
}

func TestSetTimezoneLocalAndEmpty(t *testing.T) {
	tp := &TimeProvider{}
	require.NoError(t, tp.SetTimezone("Local"))
	assert.Equal(t, time.Local, tp.Location())

	require.NoError(t, tp.SetTimezone(""))
	assert.Equal(t, time.Local, tp.Location())
}

func TestSetTimezoneInvalid(t *testing.T) {
	tp := &TimeProvider{}
	err := tp.SetTimezone("Not/AZone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not/AZone")
}

func TestDateKeyFollowsLocation(t *testing.T) {
	tp := &TimeProvider{}
	require.NoError(t, tp.SetTimezone("Asia/Shanghai"))

	// 23:30 UTC is already the next calendar day in Shanghai.
	late := time.Date(2025, 6, 16, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-17", tp.DateKey(late))

	require.NoError(t, tp.SetTimezone("UTC"))
	assert.Equal(t, "2025-06-16", tp.DateKey(late))
}

func TestGetTimeProviderDefaultsToLocal(t *testing.T) {
	tp := GetTimeProvider()
	require.NotNil(t, tp)
	assert.NotNil(t, tp.Location())
}
