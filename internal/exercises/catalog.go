// Package exercises 加载并查询只读的动作库。
// 目录在启动时从 JSON 文件加载一次，之后不再修改，可以被并发读取。
package exercises

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strings"
)

const (
	DefaultPerPage     = 50
	DefaultSearchLimit = 20
	MaxSearchLimit     = 200
	DefaultRandomCount = 5
	MaxRandomCount     = 50
)

var (
	ErrEmptyCatalog = errors.New("exercise data not loaded")
	ErrBadExercise  = errors.New("exercise is missing id or name")
)

// Exercise 与 free-exercise-db 的 JSON 字段保持一致。
type Exercise struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Level            string   `json:"level,omitempty"`
	Category         string   `json:"category,omitempty"`
	Equipment        *string  `json:"equipment"`
	Force            *string  `json:"force"`
	Mechanic         *string  `json:"mechanic"`
	PrimaryMuscles   []string `json:"primaryMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Instructions     []string `json:"instructions"`
}

// EquipmentName 返回器械名，未填写时为空字符串。
func (e *Exercise) EquipmentName() string {
	if e.Equipment == nil {
		return ""
	}
	return *e.Equipment
}

func (e *Exercise) hasMuscle(muscle string) bool {
	for _, m := range e.PrimaryMuscles {
		if strings.ToLower(m) == muscle {
			return true
		}
	}
	for _, m := range e.SecondaryMuscles {
		if strings.ToLower(m) == muscle {
			return true
		}
	}
	return false
}

func (e *Exercise) matchesText(q string) bool {
	if strings.Contains(strings.ToLower(e.Name), q) {
		return true
	}
	for _, inst := range e.Instructions {
		if strings.Contains(strings.ToLower(inst), q) {
			return true
		}
	}
	return false
}

// Catalog 是加载完成后冻结的动作库。
type Catalog struct {
	exercises    []Exercise
	muscleGroups []string
}

// Load 从文件加载动作库。
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开动作库文件失败: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read 从 JSON 数组解析动作库；缺少 id 或 name 的条目会导致失败。
func Read(r io.Reader) (*Catalog, error) {
	var list []Exercise
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("解析动作库失败: %w", err)
	}
	for i := range list {
		if list[i].ID == "" || list[i].Name == "" {
			return nil, fmt.Errorf("第 %d 条: %w", i, ErrBadExercise)
		}
	}
	return New(list), nil
}

// New 用给定的动作构造目录，list 会被复制。
func New(list []Exercise) *Catalog {
	exercises := append([]Exercise(nil), list...)

	set := make(map[string]struct{})
	for _, ex := range exercises {
		for _, m := range ex.PrimaryMuscles {
			set[m] = struct{}{}
		}
		for _, m := range ex.SecondaryMuscles {
			set[m] = struct{}{}
		}
	}
	groups := make([]string, 0, len(set))
	for m := range set {
		groups = append(groups, m)
	}
	sort.Strings(groups)

	return &Catalog{exercises: exercises, muscleGroups: groups}
}

// Len 返回动作总数。
func (c *Catalog) Len() int {
	return len(c.exercises)
}

// MuscleGroups 返回主要和次要肌群的并集，按字母排序。
func (c *Catalog) MuscleGroups() []string {
	return append([]string(nil), c.muscleGroups...)
}

// Page 是分页结果。
type Page struct {
	Exercises []Exercise `json:"exercises"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	PerPage   int        `json:"per_page"`
	HasMore   bool       `json:"has_more"`
}

// Page 返回第 page 页（从 1 开始）。
func (c *Catalog) Page(page, perPage int) (Page, error) {
	if len(c.exercises) == 0 {
		return Page{}, ErrEmptyCatalog
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	start := min((page-1)*perPage, len(c.exercises))
	end := min(start+perPage, len(c.exercises))
	return Page{
		Exercises: append([]Exercise{}, c.exercises[start:end]...),
		Total:     len(c.exercises),
		Page:      page,
		PerPage:   perPage,
		HasMore:   end < len(c.exercises),
	}, nil
}

// Filter 是搜索条件，空字段表示不过滤。
type Filter struct {
	Q         string `json:"q"`
	Muscle    string `json:"muscle"`
	Equipment string `json:"equipment"`
	Category  string `json:"category"`
	Limit     int    `json:"-"`
}

func (f Filter) normalized() Filter {
	f.Q = strings.ToLower(strings.TrimSpace(f.Q))
	f.Muscle = strings.ToLower(strings.TrimSpace(f.Muscle))
	f.Equipment = strings.ToLower(strings.TrimSpace(f.Equipment))
	f.Category = strings.ToLower(strings.TrimSpace(f.Category))
	if f.Limit <= 0 {
		f.Limit = DefaultSearchLimit
	}
	if f.Limit > MaxSearchLimit {
		f.Limit = MaxSearchLimit
	}
	return f
}

// SearchResult 是搜索结果以及规范化后的过滤条件。
type SearchResult struct {
	Exercises  []Exercise `json:"exercises"`
	TotalFound int        `json:"total_found"`
	Filters    Filter     `json:"filters"`
}

// Search 按顺序扫描，最多返回 Limit 条。
// q 匹配名称或任意一步说明；muscle 精确匹配主要或次要肌群；equipment 和 category 为子串匹配。
func (c *Catalog) Search(filter Filter) (SearchResult, error) {
	if len(c.exercises) == 0 {
		return SearchResult{}, ErrEmptyCatalog
	}
	f := filter.normalized()

	results := []Exercise{}
	for i := range c.exercises {
		ex := &c.exercises[i]
		if f.Q != "" && !ex.matchesText(f.Q) {
			continue
		}
		if f.Muscle != "" && !ex.hasMuscle(f.Muscle) {
			continue
		}
		if f.Equipment != "" && !strings.Contains(strings.ToLower(ex.EquipmentName()), f.Equipment) {
			continue
		}
		if f.Category != "" && !strings.Contains(strings.ToLower(ex.Category), f.Category) {
			continue
		}
		results = append(results, *ex)
		if len(results) >= f.Limit {
			break
		}
	}
	return SearchResult{Exercises: results, TotalFound: len(results), Filters: f}, nil
}

// ByMuscle 返回主要或次要肌群包含 muscle 的全部动作。
func (c *Catalog) ByMuscle(muscle string) ([]Exercise, error) {
	if len(c.exercises) == 0 {
		return nil, ErrEmptyCatalog
	}
	m := strings.ToLower(muscle)
	matches := []Exercise{}
	for i := range c.exercises {
		if c.exercises[i].hasMuscle(m) {
			matches = append(matches, c.exercises[i])
		}
	}
	return matches, nil
}

// Random 不重复地随机抽取 count 个动作，count 超过总数时取全部。
func (c *Catalog) Random(count int) ([]Exercise, error) {
	if len(c.exercises) == 0 {
		return nil, ErrEmptyCatalog
	}
	if count < 1 {
		count = DefaultRandomCount
	}
	count = min(count, MaxRandomCount, len(c.exercises))

	picked := make([]Exercise, 0, count)
	for _, idx := range rand.Perm(len(c.exercises))[:count] {
		picked = append(picked, c.exercises[idx])
	}
	return picked, nil
}

// Stats 是动作库的统计信息。
type Stats struct {
	TotalExercises            int            `json:"total_exercises"`
	Categories                map[string]int `json:"categories"`
	EquipmentTypes            map[string]int `json:"equipment_types"`
	PrimaryMuscleDistribution map[string]int `json:"primary_muscle_distribution"`
}

// Stats 按类别、器械和主要肌群计数；缺失的类别或器械记为 "Unknown"。
func (c *Catalog) Stats() (Stats, error) {
	if len(c.exercises) == 0 {
		return Stats{}, ErrEmptyCatalog
	}
	s := Stats{
		TotalExercises:            len(c.exercises),
		Categories:                map[string]int{},
		EquipmentTypes:            map[string]int{},
		PrimaryMuscleDistribution: map[string]int{},
	}
	for i := range c.exercises {
		ex := &c.exercises[i]
		s.Categories[orUnknown(ex.Category)]++
		s.EquipmentTypes[orUnknown(ex.EquipmentName())]++
		for _, m := range ex.PrimaryMuscles {
			s.PrimaryMuscleDistribution[m]++
		}
	}
	return s, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
