// seed.go
//
// CrossFit workout and training group tracking service
// Copyright (c) 2026 CrossBox <dev@crossbox.fit> (https://crossbox.fit)
//
// This file is part of wodtracker.
// wodtracker is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// wodtracker is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with wodtracker.
// If not, see <https://www.gnu.org/licenses/>.

package store

import (
	"fmt"

	"github.com/crossbox/wodtracker/internal/models"
)

// demoExercises is the demo catalog: three exercises per category. It is
// inserted through the normal create path, not a migration.
var demoExercises = []models.Exercise{
	{
		Name:        "Back Squat",
		Description: "Barbell squat with the bar racked across the upper back. Drive through the heels, hips below parallel at the bottom.",
		Category:    models.CategoryWeightlifting,
		VideoURL:    "https://www.youtube.com/watch?v=ultWZbUMPL8",
	},
	{
		Name:        "Deadlift",
		Description: "Lift a loaded barbell from the floor to hip height, back flat, bar close to the shins.",
		Category:    models.CategoryWeightlifting,
		VideoURL:    "https://www.youtube.com/watch?v=op9kVnSso6Q",
	},
	{
		Name:        "Clean and Jerk",
		Description: "Pull the bar from floor to shoulders, then drive it overhead. The classic Olympic total lift.",
		Category:    models.CategoryWeightlifting,
		VideoURL:    "https://www.youtube.com/watch?v=PjY1rH4_MOA",
	},
	{
		Name:        "Pull-up",
		Description: "Hang from the bar and pull until the chin clears it. Strict or kipping.",
		Category:    models.CategoryGymnastics,
		VideoURL:    "https://www.youtube.com/watch?v=eGo4IYlbE5g",
	},
	{
		Name:        "Handstand Push-up",
		Description: "Inverted against the wall, lower the head to the floor and press back to lockout.",
		Category:    models.CategoryGymnastics,
		VideoURL:    "https://www.youtube.com/watch?v=0wDEO6shVjc",
	},
	{
		Name:        "Muscle-up",
		Description: "Pull-up transitioning into a dip over the rings or bar.",
		Category:    models.CategoryGymnastics,
		VideoURL:    "https://www.youtube.com/watch?v=astSQRh1-i0",
	},
	{
		Name:        "Row",
		Description: "Concept2 erg. Long pull with legs, hips, then arms; damper to taste.",
		Category:    models.CategoryCardio,
		VideoURL:    "https://www.youtube.com/watch?v=S7HEm-fd534",
	},
	{
		Name:        "Double Unders",
		Description: "Jump rope passing twice under the feet per jump.",
		Category:    models.CategoryCardio,
		VideoURL:    "https://www.youtube.com/watch?v=82jNjDS19lg",
	},
	{
		Name:        "Run",
		Description: "Road or treadmill intervals, typically 200m to 1 mile repeats.",
		Category:    models.CategoryCardio,
	},
	{
		Name:        "Fran",
		Description: "21-15-9 reps for time: thrusters (95/65 lb) and pull-ups.",
		Category:    models.CategoryMetcons,
	},
	{
		Name:        "Cindy",
		Description: "20 minute AMRAP: 5 pull-ups, 10 push-ups, 15 air squats.",
		Category:    models.CategoryMetcons,
	},
	{
		Name:        "Murph",
		Description: "For time: 1 mile run, 100 pull-ups, 200 push-ups, 300 air squats, 1 mile run. Partition as needed.",
		Category:    models.CategoryMetcons,
	},
}

// SeedExercises loads the twelve-exercise demo catalog into st via the
// regular create operation.
func SeedExercises(st Store) error {
	for i := range demoExercises {
		e := demoExercises[i]
		if _, err := st.CreateExercise(&e); err != nil {
			return fmt.Errorf("seed exercise %q: %w", e.Name, err)
		}
	}
	return nil
}
