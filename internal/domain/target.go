package domain

import "fmt"

// Target is a shooting lane. Numbers run 1..TargetCount.
type Target struct {
	ID            string
	CompetitionID int64
	Number        int
	Name          string
}

// TargetID builds the stable identifier "<competitionId>-target-<n>"
func TargetID(competitionID int64, number int) string {
	return fmt.Sprintf("%d-target-%d", competitionID, number)
}
