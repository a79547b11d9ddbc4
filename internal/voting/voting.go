// Package voting implements the vote-set mutations shared by posts and
// complaints. All functions are pure: they take the current voter sets and
// return the updated ones, leaving persistence to the repository layer.
package voting

// Stance is the direction of a vote on a post.
type Stance string

const (
	// StanceUpvote marks support for a post.
	StanceUpvote Stance = "upvote"
	// StanceDownvote marks opposition to a post.
	StanceDownvote Stance = "downvote"
)

// Valid reports whether s is a recognized stance.
func (s Stance) Valid() bool {
	return s == StanceUpvote || s == StanceDownvote
}

// Cast applies voterID's stance to a post's voter sets. Any prior stance is
// cleared first, then the new one is added, so a voter holds at most one
// stance at a time. Casting the same stance twice is a stance-wise no-op
// (remove then re-add), not a toggle-off.
func Cast(upvoters, downvoters []uint, voterID uint, stance Stance) (up, down []uint) {
	up = remove(upvoters, voterID)
	down = remove(downvoters, voterID)

	switch stance {
	case StanceUpvote:
		up = append(up, voterID)
	case StanceDownvote:
		down = append(down, voterID)
	}
	return up, down
}

// Toggle flips voterID's membership in a single voter set. Used for
// complaint upvotes, which have no opposing stance.
func Toggle(voters []uint, voterID uint) []uint {
	if Contains(voters, voterID) {
		return remove(voters, voterID)
	}
	return append(voters, voterID)
}

// Score is the net vote count of a post: |upvoters| - |downvoters|.
func Score(upvoters, downvoters []uint) int {
	return len(upvoters) - len(downvoters)
}

// Contains reports whether voterID is in voters.
func Contains(voters []uint, voterID uint) bool {
	for _, v := range voters {
		if v == voterID {
			return true
		}
	}
	return false
}

func remove(voters []uint, voterID uint) []uint {
	out := make([]uint, 0, len(voters))
	for _, v := range voters {
		if v != voterID {
			out = append(out, v)
		}
	}
	return out
}
