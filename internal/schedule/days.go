package schedule

import (
	"strconv"
	"strings"
)

// 星期序号约定：0=周日 ... 6=周六，与存储和前端保持一致

func clampDay(day int) int {
	if day < 0 {
		return 0
	}
	if day > 6 {
		return 6
	}
	return day
}

func uniqueDays(days []int) []int {
	seen := make(map[int]bool)
	result := make([]int, 0, len(days))
	for _, d := range days {
		day := clampDay(d)
		if !seen[day] {
			seen[day] = true
			result = append(result, day)
		}
	}
	return result
}

// ParseDaysField 解析持久化的星期列表（逗号分隔的整数），
// 非数字的部分直接丢弃，越界的值收敛到 [0,6]，去重并保持首次出现的顺序
func ParseDaysField(raw string) []int {
	if raw == "" {
		return []int{}
	}

	days := make([]int, 0)
	for _, token := range strings.Split(raw, ",") {
		day, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			continue
		}
		days = append(days, day)
	}

	return uniqueDays(days)
}

// SerializeDaysField 将星期列表规整后序列化为逗号分隔的字符串
func SerializeDaysField(days []int) string {
	normalized := uniqueDays(days)
	tokens := make([]string, 0, len(normalized))
	for _, day := range normalized {
		tokens = append(tokens, strconv.Itoa(day))
	}
	return strings.Join(tokens, ",")
}

// NormalizeDayList 规整来自请求体的星期列表。
// 与 ParseDaysField 不同，这里面对的是不可信输入：不是数组则返回空列表，
// 非整数或越界的元素直接丢弃而不是收敛
func NormalizeDayList(input any) []int {
	result := make([]int, 0)
	seen := make(map[int]bool)

	appendDay := func(day int) {
		if day < 0 || day > 6 {
			return
		}
		if !seen[day] {
			seen[day] = true
			result = append(result, day)
		}
	}

	switch list := input.(type) {
	case []int:
		for _, day := range list {
			appendDay(day)
		}
	case []any:
		// encoding/json 解码出的数组元素是 float64
		for _, item := range list {
			number, ok := item.(float64)
			if !ok || number != float64(int(number)) {
				continue
			}
			appendDay(int(number))
		}
	}

	return result
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
