package coach

import (
	"fmt"
	"math"
	"strings"
	"time"

	"habit-service/internal/model"
	"habit-service/internal/stats"
)

// Fixed Vietnamese responses. The coach never surfaces a raw error to the
// user; every failure path resolves to one of these.
const (
	// EmptyStateMessage is returned without any external call when the user
	// has no habits yet.
	EmptyStateMessage = "Hãy bắt đầu bằng việc thêm một thói quen nhỏ. Hành trình vạn dặm bắt đầu từ một bước chân!"

	// EmptyResponseFallback covers a successful call that came back blank.
	EmptyResponseFallback = "Không thể tải lời khuyên lúc này, nhưng hãy cứ vững bước nhé!"

	// ErrorFallback covers every failure: network, quota, breaker open.
	ErrorFallback = "Hệ thống đang bận rộn một chút, nhưng sự nỗ lực của bạn vẫn luôn được ghi nhận!"
)

// completionsLastWeek counts a habit's completions within a rolling 7-day
// window ending at now. The distance is a calendar-day difference rounded up,
// so a completion exactly 7 days ago still counts.
func completionsLastWeek(h *model.Habit, now time.Time) int {
	count := 0
	for _, date := range h.CompletedDates {
		d, err := time.ParseInLocation(model.DateLayout, date, now.Location())
		if err != nil {
			continue
		}
		diff := now.Sub(d)
		if diff < 0 {
			diff = -diff
		}
		days := int(math.Ceil(diff.Hours() / 24))
		if days <= 7 {
			count++
		}
	}
	return count
}

func frequencyLabel(f model.Frequency) string {
	if f == model.FrequencyDaily {
		return "Hàng ngày"
	}
	return "Hàng tuần"
}

// BuildPrompt renders the Life-Coach prompt from the habit collection and the
// weekly chart points.
func BuildPrompt(habits []model.Habit, points []stats.Point, now time.Time) string {
	lines := make([]string, 0, len(habits))
	for i := range habits {
		h := &habits[i]
		lines = append(lines, fmt.Sprintf(
			"- %s (%s): Hoàn thành %d lần trong 7 ngày qua.",
			h.Name, frequencyLabel(h.Frequency), completionsLastWeek(h, now),
		))
	}

	totalCompletions := 0
	for _, p := range points {
		totalCompletions += p.Completed
	}

	return fmt.Sprintf(`Bạn là một huấn luyện viên cuộc sống (Life Coach) cực kỳ tích cực, nhiệt huyết và biết truyền cảm hứng bằng Tiếng Việt.
Dưới đây là dữ liệu thói quen của người dùng trong tuần qua:

%s

Tổng số lần hoàn thành nhiệm vụ trong tuần: %d.

Nhiệm vụ của bạn:
1. Viết một đoạn tổng kết ngắn gọn (khoảng 100 từ).
2. Khen ngợi người dùng về những gì họ đã làm được.
3. Đưa ra 2 gợi ý cụ thể để cải thiện hoặc duy trì động lực cho tuần tới.

Giọng văn: Thân thiện, ấm áp, dùng emoji, tuyệt đối không phán xét. Hãy xưng hô là "mình" và gọi người dùng là "bạn".`,
		strings.Join(lines, "\n"), totalCompletions)
}
