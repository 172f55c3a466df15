package model

import "time"

// Weekday ключ недельного расписания
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
)

// Weekdays в порядке обхода
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Valid проверяет что день входит в учебную неделю
func (w Weekday) Valid() bool {
	for _, d := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

type ClassType string

const (
	ClassTypeTheory  ClassType = "Theory"
	ClassTypeLab     ClassType = "Lab"
	ClassTypeExtra   ClassType = "Extra"
	ClassTypeSeminar ClassType = "Seminar"
	ClassTypeFree    ClassType = "Free"
)

// ClassPeriod одна пара внутри дня. Имена полей совпадают с JSON клиентов.
type ClassPeriod struct {
	Period        int       `json:"Period" validate:"gte=0"`
	StartTime     string    `json:"Start_Time" validate:"omitempty,datetime=15:04"`
	EndTime       string    `json:"End_Time" validate:"omitempty,datetime=15:04"`
	CourseName    string    `json:"Course_Name"`
	Instructor    string    `json:"Instructor"`
	Building      string    `json:"Building"`
	Room          string    `json:"Room"`
	Group         string    `json:"Group" validate:"omitempty,oneof='Group 1' 'Group 2' All"`
	ClassDuration int       `json:"Class_Duration" validate:"gte=0"`
	ClassCount    int       `json:"Class_Count" validate:"gte=0"`
	ClassType     ClassType `json:"Class_type" validate:"required,oneof=Theory Lab Extra Seminar Free"`
}

// WeekSchedule пары по дням недели
type WeekSchedule map[Weekday][]ClassPeriod

// Schedule расписание группы. ID - единственный ключ поиска и перезаписи.
type Schedule struct {
	ID         string       `json:"ID" validate:"required"`
	Semester   string       `json:"semester" validate:"required"`
	Program    string       `json:"program" validate:"required"`
	Section    string       `json:"section" validate:"required"`
	University string       `json:"university" validate:"required"`
	Schedule   WeekSchedule `json:"schedule" validate:"dive,keys,oneof=Monday Tuesday Wednesday Thursday Friday Saturday,endkeys,dive"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}
