package audit

import (
	"testing"

	"github.com/BearBump/RouteBox/internal/models"
	"github.com/stretchr/testify/require"
)

func s(v string) *string { return &v }

func TestDiffer_Diff(t *testing.T) {
	d := NewDiffer(DiffConfig{Ignore: []string{"updated_at"}, Mask: []string{"notes"}})

	before := map[string]*string{
		"name":       s("North loop"),
		"driver_id":  s("d1"),
		"notes":      s("gate code 1234"),
		"updated_at": s("yesterday"),
		"load":       nil,
	}
	after := map[string]*string{
		"name":       s("North loop"),
		"driver_id":  s("d2"),
		"notes":      s("gate code 9999"),
		"updated_at": s("today"),
		"load":       s("120"),
	}

	got := d.Diff(before, after)
	require.Equal(t, []models.FieldChange{
		{Field: "driver_id", OldValue: s("d1"), NewValue: s("d2")},
		{Field: "load", OldValue: nil, NewValue: s("120")},
		{Field: "notes", OldValue: s("***"), NewValue: s("***")},
	}, got)
}

func TestDiffer_NoChanges(t *testing.T) {
	d := NewDiffer(DiffConfig{})
	require.Empty(t, d.Diff(map[string]*string{"a": s("1")}, map[string]*string{"a": s("1")}))
	require.Empty(t, d.Diff(map[string]*string{"a": nil}, map[string]*string{}))
}

func TestActor_Stamp(t *testing.T) {
	h := &models.RouteHistory{}
	Actor{UserID: "u1", UserName: "Ana", UserType: UserTypeUser, RequestID: "req-1"}.Stamp(h)
	require.Equal(t, "u1", *h.UserID)
	require.Equal(t, "Ana", *h.UserName)
	require.Equal(t, "req-1", *h.RequestID)
	require.Nil(t, h.IPAddress)

	sys := System("req-2")
	require.Equal(t, UserTypeSystem, sys.UserType)
	require.False(t, sys.At.IsZero())
}
