package repositories

type repository struct {
	scoreboard ScoreboardRepository
	profile    ProfileRepository
	contact    ContactRepository
}

// NewRepository bundles the individual stores behind the Repository facade.
func NewRepository(scoreboard ScoreboardRepository, profile ProfileRepository, contact ContactRepository) Repository {
	return &repository{
		scoreboard: scoreboard,
		profile:    profile,
		contact:    contact,
	}
}

func (r *repository) Scoreboard() ScoreboardRepository { return r.scoreboard }
func (r *repository) Profile() ProfileRepository       { return r.profile }
func (r *repository) Contact() ContactRepository       { return r.contact }
