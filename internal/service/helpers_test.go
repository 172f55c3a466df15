package service_test

import (
	"github.com/Freeeeeet/schedule_api/internal/model"
)

func sampleSchedule(id string) *model.Schedule {
	return &model.Schedule{
		ID:         id,
		Semester:   "Spring 2024",
		Program:    "BSCS",
		Section:    "A",
		University: "UET",
		Schedule: model.WeekSchedule{
			model.Monday: {
				{
					Period:        1,
					StartTime:     "08:00",
					EndTime:       "09:30",
					CourseName:    "Algorithms",
					Instructor:    "Dr. A + Dr. B",
					Building:      "CS",
					Room:          "101",
					Group:         "All",
					ClassDuration: 90,
					ClassCount:    1,
					ClassType:     model.ClassTypeTheory,
				},
			},
			model.Wednesday: {
				{
					Period:        2,
					StartTime:     "10:00",
					EndTime:       "12:00",
					CourseName:    "Algorithms Lab",
					Instructor:    "Dr. B",
					Room:          "Lab 3",
					Group:         "Group 1",
					ClassDuration: 120,
					ClassCount:    1,
					ClassType:     model.ClassTypeLab,
				},
			},
		},
	}
}
