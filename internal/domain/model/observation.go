package model

import "time"

// Parking is the end-of-match base parking state.
type Parking string

// Parking states.
const (
	ParkingNone    Parking = "none"
	ParkingPartial Parking = "partial"
	ParkingFull    Parking = "full"
)

// ObservationSample is one scout's record of one team in one match.
type ObservationSample struct {
	ID          string `json:"id"`
	Season      int    `json:"season"`
	TeamNumber  int    `json:"team_number" validate:"gt=0"`
	EventCode   string `json:"event_code"`
	MatchNumber int    `json:"match_number" validate:"min=0"`
	Scouter     string `json:"scouter"`

	AutoLeave         bool `json:"auto_leave"`
	AutoPurple        int  `json:"auto_purple" validate:"min=0"`
	AutoGreen         int  `json:"auto_green" validate:"min=0"`
	TeleopPurple      int  `json:"teleop_purple" validate:"min=0"`
	TeleopGreen       int  `json:"teleop_green" validate:"min=0"`
	PatternsCompleted int  `json:"patterns_completed" validate:"min=0"`

	Parking     Parking `json:"parking" validate:"omitempty,oneof=none partial full"`
	DualParking bool    `json:"dual_parking"`
	// DriverSkill is rated 1 (poor) to 5 (excellent).
	DriverSkill int    `json:"driver_skill" validate:"min=1,max=5"`
	Notes       string `json:"notes,omitempty"`

	RecordedAt time.Time `json:"recorded_at"`
}

// AutoArtifacts returns the artifacts scored during autonomous.
func (o ObservationSample) AutoArtifacts() int { return o.AutoPurple + o.AutoGreen }

// TeleopArtifacts returns the artifacts scored during driver control.
func (o ObservationSample) TeleopArtifacts() int { return o.TeleopPurple + o.TeleopGreen }

// Inspection is a pit-scouting record for a team.
type Inspection struct {
	Season     int       `json:"season"`
	TeamNumber int       `json:"team_number" validate:"gt=0"`
	RobotName  string    `json:"robot_name,omitempty"`
	DriveTrain string    `json:"drive_train,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	UpdatedBy  string    `json:"updated_by,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}
