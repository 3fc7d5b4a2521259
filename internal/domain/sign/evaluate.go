package sign

import (
	"fmt"
	"strings"
)

// Headings shared by several evaluation outcomes.
const (
	headingCanPark    = "Yes, you can park here"
	headingCannotPark = "No, you cannot park here"
	headingDisabled   = "This is a disabled parking spot"
)

const clearwayReference = "See the No Parking/No Standing and Clearway section for more information."

// Evaluate scans sign items in order and produces the parking verdict for the
// given user. The first item that yields a definitive answer locks the
// outcome; later items no longer change it, but every item still contributes
// its description to AllSigns. Evaluate is pure: rendering is the caller's
// concern.
func Evaluate(items []SignItem, user UserContext) Verdict {
	st := evalState{}
	for _, item := range items {
		st.allSigns = append(st.allSigns, item.FriendlyDesc)
		if st.locked() {
			continue
		}
		st.apply(item, user)
	}

	if !st.gotMatch {
		if outsideParkingHours(items, user) && anyDirectionCompatible(items, user) {
			return Verdict{
				CanPark:  true,
				Heading:  headingCanPark,
				Messages: []string{"None of the restrictions on this sign currently apply."},
				AllSigns: st.allSigns,
			}
		}
		return Verdict{
			CanPark:  false,
			Heading:  headingCannotPark,
			Warnings: []string{"There are no options available to park in this spot at this time."},
			AllSigns: st.allSigns,
		}
	}

	return Verdict{
		CanPark:  st.okToPark,
		Heading:  st.heading,
		Messages: st.messages,
		Warnings: st.warnings,
		AllSigns: st.allSigns,
	}
}

type evalState struct {
	okToPark    bool
	notOkToPark bool
	gotMatch    bool
	heading     string
	messages    []string
	warnings    []string
	allSigns    []string
}

func (st *evalState) locked() bool {
	return st.okToPark || st.notOkToPark
}

func (st *evalState) apply(item SignItem, user UserContext) {
	dirOK := directionMatches(item.Direction, user.Direction)
	// A no-parking sign with no stated side applies regardless of where the
	// vehicle is.
	if item.Category == CategoryNoParking && item.Direction == DirectionNone {
		dirOK = true
	}
	if !dirOK {
		return
	}
	// LOADING signs are evaluated even outside their hours: a loading zone
	// whose window is not in force is ordinary parking.
	if !item.IsNow && item.Category != CategoryLoading {
		return
	}

	switch item.Category {
	case CategoryParking:
		st.okToPark = true
		st.gotMatch = true
		st.heading = headingCanPark
		st.messages = append(st.messages, fmt.Sprintf("You can park here for up to %s hours.", item.Hours))
		if item.ToTime != "" {
			st.messages = append(st.messages, fmt.Sprintf("Up until %s.", item.ToTime))
		}
		if item.Metered {
			st.messages = append(st.messages, "This is a metered spot, payment is required.")
		} else {
			st.messages = append(st.messages, "This spot is free, no payment is required.")
		}

	case CategoryLoading:
		switch {
		case !item.IsNow:
			st.okToPark = true
			st.gotMatch = true
			st.heading = headingCanPark
			st.messages = append(st.messages, "This is a loading zone, but its time restriction does not currently apply.")
		case user.Commercial:
			st.okToPark = true
			st.gotMatch = true
			st.heading = headingCanPark
			st.messages = append(st.messages, "This is a loading zone. Commercial vehicles such as trucks and vans may stop here while loading.")
		default:
			st.notOkToPark = true
			st.gotMatch = true
			st.heading = headingCannotPark
			st.warnings = append(st.warnings, "This is a loading zone. You cannot park here unless you are driving a commercial vehicle such as a truck or van.")
		}

	case CategoryDisabled:
		if user.DisabledPermit {
			st.okToPark = true
			st.gotMatch = true
			st.heading = headingDisabled
			st.messages = append(st.messages, fmt.Sprintf("You can park here for up to %s hours.", item.Hours))
			if item.ToTime != "" {
				st.messages = append(st.messages, fmt.Sprintf("Up until %s.", item.ToTime))
			}
			st.messages = append(st.messages, "You can park here because a disabled permit is displayed on your vehicle.")
		} else {
			st.notOkToPark = true
			st.gotMatch = true
			st.heading = headingCannotPark
			st.warnings = append(st.warnings, "This is a disabled parking spot. You cannot park here without displaying a disabled permit.")
		}

	case CategoryNoParking:
		st.notOkToPark = true
		st.gotMatch = true
		st.heading = headingCannotPark
		warning := "This is a no parking or no standing zone. You cannot stop or park here."
		if side := sideText(item.Direction); side != "" {
			warning += " " + side
		}
		st.warnings = append(st.warnings, warning, clearwayReference)

	case CategoryTow:
		st.notOkToPark = true
		st.gotMatch = true
		st.heading = headingCannotPark
		warning := "This is a clearway. You cannot stop here and your vehicle may be towed away."
		if side := sideText(item.Direction); side != "" {
			warning += " " + side
		}
		st.warnings = append(st.warnings, warning, clearwayReference)

	default:
		// Unknown category: the item does not match, only its description
		// was recorded.
	}
}

// directionMatches reports whether a sign's stated side applies to the side
// the user selected. BOTH applies to either side; an unstated side matches
// nothing here (category-specific exceptions are handled by the caller).
func directionMatches(signDir, userDir Direction) bool {
	if signDir == DirectionBoth {
		return true
	}
	return signDir != DirectionNone && strings.EqualFold(string(signDir), string(userDir))
}

func sideText(d Direction) string {
	switch d {
	case DirectionLeft:
		return "This applies to the left hand side of the sign."
	case DirectionRight:
		return "This applies to the right hand side of the sign."
	}
	return ""
}

// outsideParkingHours reports whether no PARKING restriction on the sign is
// currently in force for the user's side. Only PARKING items are considered;
// other categories are deliberately ignored by this fallback.
func outsideParkingHours(items []SignItem, user UserContext) bool {
	for _, item := range items {
		if item.Category == CategoryParking && item.IsNow && directionMatches(item.Direction, user.Direction) {
			return false
		}
	}
	return true
}

func anyDirectionCompatible(items []SignItem, user UserContext) bool {
	for _, item := range items {
		if directionMatches(item.Direction, user.Direction) {
			return true
		}
		if item.Category == CategoryNoParking && item.Direction == DirectionNone {
			return true
		}
	}
	return false
}
