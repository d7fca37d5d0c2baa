package planner

// DayType 标记一天是训练还是休息。
type DayType string

const (
	DayRest  DayType = "rest"
	DayTrain DayType = "train"
)

// DaysInWeek 是周计划的固定长度。
const DaysInWeek = 7

// Day 是周计划中的一天，Focus 只在训练日出现。
type Day struct {
	Day   int     `json:"day"`
	Type  DayType `json:"type"`
	Focus string  `json:"focus,omitempty"`
}

// BuildWeek 从第 1 天到第 7 天单次贪心分配训练日。
//
// 已排满 daysPerWeek 个训练日后全部休息；EveryOtherDay 规则下前一天训练则今天休息；
// 否则训练 cycle[cursor % len(cycle)] 并推进游标。
// 目标超过 7 天或规则导致无法排满时不报错，训练天数可能少于 daysPerWeek。
func BuildWeek(cycle []string, daysPerWeek int, rule RestRule) []Day {
	week := make([]Day, 0, DaysInWeek)
	trained := 0
	cursor := 0
	prevTrain := false

	for day := 1; day <= DaysInWeek; day++ {
		switch {
		case trained >= daysPerWeek || len(cycle) == 0:
			week = append(week, Day{Day: day, Type: DayRest})
			prevTrain = false
		case rule == EveryOtherDay && prevTrain:
			week = append(week, Day{Day: day, Type: DayRest})
			prevTrain = false
		default:
			week = append(week, Day{Day: day, Type: DayTrain, Focus: cycle[cursor%len(cycle)]})
			cursor++
			trained++
			prevTrain = true
		}
	}
	return week
}

// TrainingDays 统计周计划中的训练天数。
func TrainingDays(week []Day) int {
	n := 0
	for _, d := range week {
		if d.Type == DayTrain {
			n++
		}
	}
	return n
}
