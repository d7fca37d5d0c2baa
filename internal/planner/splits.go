// Package planner 包含训练分化表、周计划生成和分化选择规则。
// 所有表在包初始化时建立，之后只读。
package planner

import "sort"

// RestRule 决定训练日之间如何插入休息日。
type RestRule string

const (
	// EveryOtherDay 每个训练日之后强制休息一天。
	EveryOtherDay RestRule = "every_other_day"
	// AsNeeded 只在训练天数达到上限后休息。
	AsNeeded RestRule = "as_needed"
)

// Split 是一个命名的训练分化：按顺序循环的训练重点。
type Split struct {
	Name     string   `json:"name"`
	Sessions []string `json:"sessions"`
}

const (
	SplitFullBody    = "full_body"
	SplitFullBodyEOD = "fb_eod"
	SplitUpperLower  = "upper_lower"
	SplitPPL         = "ppl"
)

var splits = map[string][]string{
	SplitFullBody:    {"full"},
	SplitFullBodyEOD: {"full"},
	SplitUpperLower:  {"upper", "lower"},
	"ulf":            {"upper", "lower", "full"},
	SplitPPL:         {"push", "pull", "legs"},
	"ppl_6":          {"push", "pull", "legs", "push", "pull", "legs"},
	"arnold":         {"chest_back", "shoulders_arms", "legs"},
	"arnold_6":       {"chest_back", "shoulders_arms", "legs", "chest_back", "shoulders_arms", "legs"},
	"cbum":           {"push_chest", "pull_back", "legs_quads", "upper_shoulders_arms", "lower_hams_glutes"},
	"bro":            {"chest", "back", "shoulders", "arms", "legs"},
	"phul":           {"upper_power", "lower_power", "upper_hypertrophy", "lower_hypertrophy"},
}

var restRules = map[string]RestRule{
	SplitFullBodyEOD: EveryOtherDay,
}

// LookupSplit 返回分化的副本，调用方修改结果不会影响分化表。
func LookupSplit(name string) (Split, bool) {
	sessions, ok := splits[name]
	if !ok {
		return Split{}, false
	}
	return Split{Name: name, Sessions: append([]string(nil), sessions...)}, true
}

// SplitNames 返回所有分化名，按字母排序。
func SplitNames() []string {
	names := make([]string, 0, len(splits))
	for name := range splits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RestRuleFor 返回分化对应的休息规则，未登记的分化为 AsNeeded。
func RestRuleFor(name string) RestRule {
	if rule, ok := restRules[name]; ok {
		return rule
	}
	return AsNeeded
}
