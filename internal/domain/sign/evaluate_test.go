package sign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_ParkingSignMatchesUserSide(t *testing.T) {
	items := []SignItem{
		{Category: CategoryParking, Direction: DirectionLeft, IsNow: true, Hours: "2", FriendlyDesc: "2P 8am-6pm"},
	}
	user := UserContext{Direction: DirectionLeft}

	v := Evaluate(items, user)

	assert.True(t, v.CanPark)
	assert.Equal(t, "Yes, you can park here", v.Heading)
	require.NotEmpty(t, v.Messages)
	assert.Contains(t, v.Messages[0], "2")
	assert.Contains(t, v.Messages[len(v.Messages)-1], "no payment")
}

func TestEvaluate_MeteredParkingMentionsPayment(t *testing.T) {
	items := []SignItem{
		{Category: CategoryParking, Direction: DirectionBoth, IsNow: true, Hours: "1", Metered: true, ToTime: "6:00 PM"},
	}

	v := Evaluate(items, UserContext{Direction: DirectionRight})

	assert.True(t, v.CanPark)
	assert.Contains(t, v.Messages, "Up until 6:00 PM.")
	assert.Contains(t, v.Messages, "This is a metered spot, payment is required.")
}

func TestEvaluate_NoParkingRightHandSide(t *testing.T) {
	items := []SignItem{
		{Category: CategoryNoParking, Direction: DirectionRight, IsNow: true, FriendlyDesc: "No Standing"},
	}
	user := UserContext{Direction: DirectionRight}

	v := Evaluate(items, user)

	assert.False(t, v.CanPark)
	require.NotEmpty(t, v.Warnings)
	assert.Contains(t, v.Warnings[0], "right hand side")
	assert.Contains(t, v.Warnings[1], "Clearway")
}

func TestEvaluate_NoParkingUnspecifiedSideAppliesToEveryone(t *testing.T) {
	items := []SignItem{
		{Category: CategoryNoParking, Direction: DirectionNone, IsNow: true},
	}

	v := Evaluate(items, UserContext{Direction: DirectionLeft})

	assert.False(t, v.CanPark)
	require.NotEmpty(t, v.Warnings)
	assert.NotContains(t, v.Warnings[0], "hand side")
}

func TestEvaluate_TowAwayZone(t *testing.T) {
	items := []SignItem{
		{Category: CategoryTow, Direction: DirectionLeft, IsNow: true},
	}

	v := Evaluate(items, UserContext{Direction: DirectionLeft})

	assert.False(t, v.CanPark)
	require.NotEmpty(t, v.Warnings)
	assert.Contains(t, v.Warnings[0], "towed")
	assert.Contains(t, v.Warnings[0], "left hand side")
}

func TestEvaluate_LoadingZoneNonCommercial(t *testing.T) {
	items := []SignItem{
		{Category: CategoryLoading, Direction: DirectionLeft, IsNow: true},
	}
	user := UserContext{Direction: DirectionLeft, Commercial: false}

	v := Evaluate(items, user)

	assert.False(t, v.CanPark)
	require.NotEmpty(t, v.Warnings)
	assert.Contains(t, v.Warnings[0], "commercial vehicle")
}

func TestEvaluate_LoadingZoneCommercialVehicle(t *testing.T) {
	items := []SignItem{
		{Category: CategoryLoading, Direction: DirectionLeft, IsNow: true},
	}
	user := UserContext{Direction: DirectionLeft, Commercial: true}

	v := Evaluate(items, user)

	assert.True(t, v.CanPark)
	require.NotEmpty(t, v.Messages)
	assert.Contains(t, v.Messages[0], "loading")
}

func TestEvaluate_LoadingZoneOutsideHours(t *testing.T) {
	items := []SignItem{
		{Category: CategoryLoading, Direction: DirectionLeft, IsNow: false},
	}
	user := UserContext{Direction: DirectionLeft, Commercial: false}

	v := Evaluate(items, user)

	assert.True(t, v.CanPark)
	require.NotEmpty(t, v.Messages)
	assert.Contains(t, v.Messages[0], "does not currently apply")
}

func TestEvaluate_DisabledSpotWithPermit(t *testing.T) {
	items := []SignItem{
		{Category: CategoryDisabled, Direction: DirectionBoth, IsNow: true, Hours: "3", ToTime: "5:30 PM"},
	}
	user := UserContext{Direction: DirectionLeft, DisabledPermit: true}

	v := Evaluate(items, user)

	assert.True(t, v.CanPark)
	assert.Equal(t, "This is a disabled parking spot", v.Heading)
	assert.Contains(t, v.Messages, "Up until 5:30 PM.")
	assert.Contains(t, v.Messages[len(v.Messages)-1], "disabled permit")
}

func TestEvaluate_DisabledSpotWithoutPermit(t *testing.T) {
	items := []SignItem{
		{Category: CategoryDisabled, Direction: DirectionBoth, IsNow: true},
	}

	v := Evaluate(items, UserContext{Direction: DirectionRight})

	assert.False(t, v.CanPark)
	require.NotEmpty(t, v.Warnings)
	assert.Contains(t, v.Warnings[0], "permit")
}

func TestEvaluate_FirstMatchWins(t *testing.T) {
	items := []SignItem{
		{Category: CategoryNoParking, Direction: DirectionLeft, IsNow: true, FriendlyDesc: "No Parking 8am-6pm"},
		{Category: CategoryParking, Direction: DirectionLeft, IsNow: true, Hours: "2", FriendlyDesc: "2P after 6pm"},
	}
	user := UserContext{Direction: DirectionLeft}

	v := Evaluate(items, user)

	assert.False(t, v.CanPark)
	assert.Empty(t, v.Messages)
	require.NotEmpty(t, v.Warnings)
	assert.Contains(t, v.Warnings[0], "no parking")
	assert.Equal(t, []string{"No Parking 8am-6pm", "2P after 6pm"}, v.AllSigns)
}

func TestEvaluate_SummaryCoversEveryItem(t *testing.T) {
	items := []SignItem{
		{Category: CategoryParking, Direction: DirectionLeft, IsNow: true, Hours: "4", FriendlyDesc: "4P"},
		{Category: CategoryNoParking, Direction: DirectionLeft, IsNow: true, FriendlyDesc: "No Standing"},
		{Category: CategoryTow, Direction: DirectionLeft, IsNow: true, FriendlyDesc: "Clearway"},
	}

	v := Evaluate(items, UserContext{Direction: DirectionLeft})

	assert.Len(t, v.AllSigns, len(items))
	assert.True(t, v.CanPark)
}

func TestEvaluate_SignOnOtherSideDoesNotApply(t *testing.T) {
	items := []SignItem{
		{Category: CategoryNoParking, Direction: DirectionLeft, IsNow: true},
	}
	user := UserContext{Direction: DirectionRight}

	v := Evaluate(items, user)

	// The only restriction is on the other side, so the outside-hours
	// fallback finds no active PARKING restriction but also no compatible
	// direction: negative default.
	assert.False(t, v.CanPark)
	require.NotEmpty(t, v.Warnings)
	assert.Contains(t, v.Warnings[0], "no options available")
}

func TestEvaluate_OutsideHoursFallbackAllows(t *testing.T) {
	items := []SignItem{
		{Category: CategoryParking, Direction: DirectionLeft, IsNow: false, Hours: "2", FriendlyDesc: "2P 8am-6pm"},
	}
	user := UserContext{Direction: DirectionLeft}

	v := Evaluate(items, user)

	assert.True(t, v.CanPark)
	require.NotEmpty(t, v.Messages)
	assert.Contains(t, v.Messages[0], "currently apply")
}

func TestEvaluate_EmptyItemsNegativeDefault(t *testing.T) {
	v := Evaluate(nil, UserContext{Direction: DirectionLeft})

	assert.False(t, v.CanPark)
	require.NotEmpty(t, v.Warnings)
	assert.Contains(t, v.Warnings[0], "no options available")
	assert.Empty(t, v.AllSigns)
}

func TestEvaluate_UnknownCategoryFallsThrough(t *testing.T) {
	items := []SignItem{
		{Category: "", Direction: DirectionLeft, IsNow: true, FriendlyDesc: "unreadable panel"},
		{Category: CategoryParking, Direction: DirectionLeft, IsNow: true, Hours: "1", FriendlyDesc: "1P"},
	}
	user := UserContext{Direction: DirectionLeft}

	v := Evaluate(items, user)

	assert.True(t, v.CanPark)
	assert.Equal(t, []string{"unreadable panel", "1P"}, v.AllSigns)
}

func TestEvaluate_LockSkipsLaterRuleEvaluation(t *testing.T) {
	items := []SignItem{
		{Category: CategoryParking, Direction: DirectionLeft, IsNow: true, Hours: "2", FriendlyDesc: "2P"},
		{Category: CategoryDisabled, Direction: DirectionLeft, IsNow: true, FriendlyDesc: "Disabled only"},
	}
	user := UserContext{Direction: DirectionLeft}

	v := Evaluate(items, user)

	assert.True(t, v.CanPark)
	assert.Empty(t, v.Warnings)
	assert.Len(t, v.AllSigns, 2)
}

func TestDirectionMatches(t *testing.T) {
	tests := []struct {
		name    string
		signDir Direction
		userDir Direction
		want    bool
	}{
		{"same side", DirectionLeft, DirectionLeft, true},
		{"opposite side", DirectionLeft, DirectionRight, false},
		{"both sides", DirectionBoth, DirectionRight, true},
		{"case insensitive", Direction("left"), DirectionLeft, true},
		{"unspecified", DirectionNone, DirectionLeft, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, directionMatches(tt.signDir, tt.userDir))
		})
	}
}
