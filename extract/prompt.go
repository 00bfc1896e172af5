/*
prompt.go - Prompt template for the model-assisted extractor

The template is fixed: it embeds only the input text and the reference
year and demands strict JSON in the modelReply shape. Keep instruction
changes in sync with the parser in model.go.
*/
package extract

import "fmt"

const systemPrompt = `あなたはシフト管理アプリのアシスタントです。従業員の自由記述のシフト希望テキストを構造化データに変換します。
必ず次の形式のJSONオブジェクトのみを返してください。説明文やコードフェンスは一切付けないでください。

{
  "parsedRequests": [
    {
      "date": "YYYY-MM-DD",
      "timeSlots": [{"start": "HH:MM", "end": "HH:MM"}],
      "type": "work" | "off" | "available",
      "priority": "high" | "medium" | "low",
      "notes": "補足があれば",
      "confidence": 0.0-1.0
    }
  ],
  "processingNotes": "解析に関する補足"
}

ルール:
- 休み希望は type "off"、timeSlots は空配列、priority "high"
- いつでも出勤可能は type "available"、timeSlots は空配列
- 時間帯の指定がある行は type "work" で timeSlots に開始・終了を入れる
- 「絶対」「必ず」などの強い表現は priority "high"、「どちらでも」「可能なら」は "low"
- 日付に年が無い場合は基準年を補完する`

func buildPrompt(text string, year int) (system, user string) {
	user = fmt.Sprintf("基準年: %d\n\nシフト希望テキスト:\n%s", year, text)
	return systemPrompt, user
}
