package compat

import (
	"fmt"
	"math"
	"strings"

	"github.com/sparkmatch/spark-api/internal/domain"
)

// maxReasons caps how many explanations accompany a score.
const maxReasons = 3

// Age proximity (in years from the viewer's ideal age) that counts as a
// "perfect age match" reason.
const perfectAgeMatchYears = 2.0

// Distance cutoffs for proximity reasons, in kilometers.
const (
	veryCloseKm = 5.0
	nearbyKm    = 20.0
)

// goalLabels maps goals to display text for match reasons.
var goalLabels = map[domain.RelationshipGoal]string{
	domain.GoalLongTerm:   "a long-term relationship",
	domain.GoalShortTerm:  "something casual",
	domain.GoalFriendship: "friendship",
	domain.GoalOpen:       "whatever happens",
	domain.GoalMarriage:   "marriage",
}

// buildReasons produces up to maxReasons ordered, human-readable strings
// explaining why the candidate was shown. Candidates are evaluated in a
// fixed priority order: strong shared interests, any shared interest,
// shared language, age fit, same goal, same exercise habit, proximity,
// premium, verified.
func buildReasons(
	viewer, candidate *domain.Profile,
	sharedInterests, sharedLanguages []string,
	distanceKm float64,
) []string {
	reasons := make([]string, 0, maxReasons)

	add := func(reason string) bool {
		reasons = append(reasons, reason)
		return len(reasons) >= maxReasons
	}

	if len(sharedInterests) >= 3 {
		top := sharedInterests[:3]
		if add(fmt.Sprintf("You both love %s", joinNatural(top))) {
			return reasons
		}
	} else if len(sharedInterests) >= 1 {
		if add(fmt.Sprintf("You both enjoy %s", sharedInterests[0])) {
			return reasons
		}
	}

	if len(sharedLanguages) > 0 {
		if add(fmt.Sprintf("You both speak %s", sharedLanguages[0])) {
			return reasons
		}
	}

	if viewer.PreferredAges.Contains(candidate.Age) &&
		math.Abs(float64(candidate.Age)-idealAge(viewer.PreferredAges)) <= perfectAgeMatchYears {
		if add("Perfect age match") {
			return reasons
		}
	}

	if viewer.Goal != "" && viewer.Goal == candidate.Goal {
		label := goalLabels[viewer.Goal]
		if label == "" {
			label = string(viewer.Goal)
		}
		if add(fmt.Sprintf("You're both looking for %s", label)) {
			return reasons
		}
	}

	if viewer.Lifestyle.Exercise != "" && viewer.Lifestyle.Exercise == candidate.Lifestyle.Exercise {
		if add("You share the same exercise habits") {
			return reasons
		}
	}

	if distanceKm >= 0 {
		switch {
		case distanceKm < veryCloseKm:
			if add("Very close to you") {
				return reasons
			}
		case distanceKm < nearbyKm:
			if add("Nearby") {
				return reasons
			}
		}
	}

	if candidate.Premium {
		if add("Premium member") {
			return reasons
		}
	}

	if candidate.Verified {
		if add("Verified profile") {
			return reasons
		}
	}

	return reasons
}

// joinNatural renders a short list as "a, b and c".
func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
