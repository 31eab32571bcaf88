// Базовые типы — универсальный язык общения с vision-моделями.
package llm

// Role — роль автора сообщения в диалоге.
type Role string

// Константы для удобства
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"

	TypeText  = "text"
	TypeImage = "image_url"
)

// ContentPart — часть сообщения (текст или картинка).
type ContentPart struct {
	Type     string // "text" или "image_url"
	Text     string // Заполнено, если Type == "text"
	ImageURL string // Заполнено, если Type == "image_url" (data-uri или http ссылка)
}

// Message — одно сообщение с мультимодальным содержимым.
type Message struct {
	Role  Role
	Parts []ContentPart
}

// TextMessage создает сообщение из одного текстового блока.
func TextMessage(role Role, text string) Message {
	return Message{
		Role:  role,
		Parts: []ContentPart{{Type: TypeText, Text: text}},
	}
}

// VisionMessage создает user-сообщение "промпт + картинка".
//
// Порядок частей фиксирован: сначала текст, затем image_url.
// imageRef — base64 data-uri или http(s) ссылка, на этом уровне не различаются.
func VisionMessage(prompt, imageRef string) Message {
	return Message{
		Role: RoleUser,
		Parts: []ContentPart{
			{Type: TypeText, Text: prompt},
			{Type: TypeImage, ImageURL: imageRef},
		},
	}
}

// ChatRequest — унифицированный запрос к любой модели.
type ChatRequest struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Messages    []Message // История чата
}

// Usage — счетчики токенов из ответа API.
//
// Провайдеры не обязаны возвращать usage. Отсутствующие счетчики
// остаются отсутствующими (nil указатель), нули не синтезируются.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Choice — один вариант ответа модели.
type Choice struct {
	Content      string // Текст ответа (может быть пустым)
	FinishReason string // "stop", "length" и т.д.; пустая строка если API не вернул
}

// Completion — сырой ответ модели до нормализации.
type Completion struct {
	Model   string // Идентификатор модели, который вернул API
	Choices []Choice
	Usage   *Usage // nil если API не вернул счетчики
}
