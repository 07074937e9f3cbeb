package commit

// Journal is the append-only record of every repository-assigned id created
// during one commit attempt, partitioned by entity kind. CreatedProjectID is
// set only when the attempt created the project itself; updates to an
// existing project are not journaled because they are never compensated.
// Rollback reverse-iterates each partition in recorded append order.
type Journal struct {
	CreatedProjectID *int64
	MilestoneIDs     []int64
	ActivityIDs      []int64
	PEPIDs           []int64
}

func (j *Journal) recordProject(id int64) {
	j.CreatedProjectID = &id
}

func (j *Journal) recordMilestone(id int64) {
	j.MilestoneIDs = append(j.MilestoneIDs, id)
}

func (j *Journal) recordActivity(id int64) {
	j.ActivityIDs = append(j.ActivityIDs, id)
}

func (j *Journal) recordPEP(id int64) {
	j.PEPIDs = append(j.PEPIDs, id)
}

// Size is the number of compensating deletes a full rollback would attempt.
func (j *Journal) Size() int {
	n := len(j.MilestoneIDs) + len(j.ActivityIDs) + len(j.PEPIDs)
	if j.CreatedProjectID != nil {
		n++
	}
	return n
}
