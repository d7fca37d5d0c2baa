package planner

// DefaultDaysPerWeek 在训练频率无法识别时使用。
const DefaultDaysPerWeek = 4

var volumeToDays = map[string]int{
	"1-2": 2,
	"3-4": 4,
	"5-6": 6,
	"7":   7,
}

// Plan 是一次生成的训练计划。
type Plan struct {
	DaysPerWeek int      `json:"days_per_week"`
	Split       string   `json:"split"`
	Equipment   string   `json:"equipment"`
	Goals       []string `json:"goals"`
	RestRule    RestRule `json:"rest_rule"`
	Week        []Day    `json:"week"`
}

// DaysForVolume 把资料中的训练频率 ("1-2", "3-4", "5-6", "7") 转换为每周训练天数。
func DaysForVolume(volume string) int {
	if days, ok := volumeToDays[volume]; ok {
		return days
	}
	return DefaultDaysPerWeek
}

// PickSplit 根据用户资料选择分化。
// 目前只看训练频率，经验、目标和器械会被接收但不参与选择。
func PickSplit(experienceLevel, workoutVolume string, goals []string, equipment string) string {
	return PickSplitForDays(DaysForVolume(workoutVolume))
}

// PickSplitForDays 按每周训练天数选择分化。
func PickSplitForDays(days int) string {
	switch {
	case days <= 2:
		return SplitFullBody
	case days == 3:
		return SplitFullBodyEOD
	case days == 4:
		return SplitUpperLower
	default:
		return SplitPPL
	}
}

// GeneratePlan 选择分化并展开为一周的安排。
func GeneratePlan(experienceLevel, workoutVolume string, goals []string, equipment string) Plan {
	days := DaysForVolume(workoutVolume)
	name := PickSplit(experienceLevel, workoutVolume, goals, equipment)
	split, _ := LookupSplit(name)
	rule := RestRuleFor(name)

	if goals == nil {
		goals = []string{}
	}
	return Plan{
		DaysPerWeek: days,
		Split:       name,
		Equipment:   equipment,
		Goals:       goals,
		RestRule:    rule,
		Week:        BuildWeek(split.Sessions, days, rule),
	}
}
