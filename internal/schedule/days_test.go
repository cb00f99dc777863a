package schedule

import (
	"reflect"
	"testing"
)

func TestParseDaysField_RoundTrip(t *testing.T) {
	for day := 0; day <= 6; day++ {
		serialized := SerializeDaysField([]int{day})
		parsed := ParseDaysField(serialized)
		if !reflect.DeepEqual(parsed, []int{day}) {
			t.Errorf("星期 %d 序列化后再解析应保持不变，实际=%v", day, parsed)
		}
	}
}

func TestParseDaysField_DedupeKeepsOrder(t *testing.T) {
	got := ParseDaysField("2,2,5")
	if !reflect.DeepEqual(got, []int{2, 5}) {
		t.Errorf("期望 [2 5]，实际=%v", got)
	}
}

func TestParseDaysField_Empty(t *testing.T) {
	if got := ParseDaysField(""); len(got) != 0 {
		t.Errorf("空字符串应解析为空列表，实际=%v", got)
	}
}

func TestParseDaysField_DiscardsGarbageAndClamps(t *testing.T) {
	got := ParseDaysField(" 1 , abc, 9, -3, 4 ")
	// 9 收敛为 6，-3 收敛为 0，abc 丢弃
	if !reflect.DeepEqual(got, []int{1, 6, 0, 4}) {
		t.Errorf("期望 [1 6 0 4]，实际=%v", got)
	}
}

func TestSerializeDaysField_Normalizes(t *testing.T) {
	got := SerializeDaysField([]int{5, 5, 9, 1})
	if got != "5,6,1" {
		t.Errorf("期望 \"5,6,1\"，实际=%q", got)
	}
}

func TestNormalizeDayList_NonArray(t *testing.T) {
	if got := NormalizeDayList("1,2,3"); len(got) != 0 {
		t.Errorf("非数组输入应得到空列表，实际=%v", got)
	}
	if got := NormalizeDayList(nil); len(got) != 0 {
		t.Errorf("nil 输入应得到空列表，实际=%v", got)
	}
}

func TestNormalizeDayList_DropsInvalidEntries(t *testing.T) {
	// 模拟 encoding/json 解码出的数组
	input := []any{float64(1), float64(7), float64(-1), "2", float64(2.5), float64(3), float64(3)}
	got := NormalizeDayList(input)
	// 越界和非整数直接丢弃而不是收敛
	if !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("期望 [1 3]，实际=%v", got)
	}
}

func TestNormalizeDayList_IntSlice(t *testing.T) {
	got := NormalizeDayList([]int{0, 6, 6, 3})
	if !reflect.DeepEqual(got, []int{0, 6, 3}) {
		t.Errorf("期望 [0 6 3]，实际=%v", got)
	}
}
