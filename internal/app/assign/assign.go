/*
Package assign produces the Secret-Santa pairing: a permutation of the roster
in which nobody is assigned to themselves.
*/
package assign

import (
	"errors"
	"math/rand/v2"

	"confidentialclaus/internal/app/user"
)

// ErrTooFewParticipants is returned when a derangement is impossible:
// with a single participant the self-exclusion rule can never be satisfied.
var ErrTooFewParticipants = errors.New("cannot self-exclude with only one participant")

// Derange returns a shuffled copy of users such that for every index i the
// returned user differs from users[i]. The giver at position i receives
// the returned user at position i.
//
// The approach is rejection sampling: uniformly shuffle a copy, reshuffle
// while any fixed point remains. Sampling is uniform over derangements, and
// the expected number of attempts converges to e for large rosters. For two
// participants the only accepted outcome is the swap, so termination is
// probabilistic but certain; for one participant no derangement exists and
// the call fails instead of looping forever.
func Derange(users []user.User) ([]user.User, error) {
	if len(users) == 1 {
		return nil, ErrTooFewParticipants
	}

	assigned := make([]user.User, len(users))
	copy(assigned, users)

	for {
		rand.Shuffle(len(assigned), func(i, j int) {
			assigned[i], assigned[j] = assigned[j], assigned[i]
		})
		if !hasFixedPoint(users, assigned) {
			return assigned, nil
		}
	}
}

// hasFixedPoint reports whether any position holds the same username in both lists.
func hasFixedPoint(original, shuffled []user.User) bool {
	for i := range original {
		if original[i].Username == shuffled[i].Username {
			return true
		}
	}
	return false
}
