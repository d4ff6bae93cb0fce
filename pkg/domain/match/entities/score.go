package match_entities

import "encoding/json"

// ScoreSet is one set's game count for each team.
type ScoreSet struct {
	T1 int `json:"t1"`
	T2 int `json:"t2"`
}

// Score is the canonical wire shape `{sets: [...]}` validated by the score
// grammar. 2 or 3 sets only.
type Score struct {
	Sets []ScoreSet `json:"sets"`
}

func (s Score) MarshalToJSON() ([]byte, error) {
	return json.Marshal(s)
}

func ParseScore(raw []byte) (Score, error) {
	var s Score
	if err := json.Unmarshal(raw, &s); err != nil {
		return Score{}, err
	}
	return s, nil
}

// Equal compares set-by-set; two scores with identical sets but different
// JSON key order still compare equal.
func (s Score) Equal(other Score) bool {
	if len(s.Sets) != len(other.Sets) {
		return false
	}
	for i := range s.Sets {
		if s.Sets[i] != other.Sets[i] {
			return false
		}
	}
	return true
}

// SetsWonByTeam1 counts how many sets team 1 won; used by DerivedWinner and
// by the analytics projector's close-match detection (sets_played==3).
func (s Score) SetsWonByTeam1() int {
	wins := 0
	for _, set := range s.Sets {
		if set.T1 > set.T2 {
			wins++
		}
	}
	return wins
}

// DerivedWinner returns 1 or 2, the team holding more set wins. Only valid
// for a score that has already passed Validate.
func (s Score) DerivedWinner() int {
	t1 := s.SetsWonByTeam1()
	if t1*2 > len(s.Sets) {
		return 1
	}
	return 2
}
