package integration

const (
	WhatsApp   = "whatsapp"
	Twilio     = "twilio"
	OpenAI     = "openai"
	Dialogflow = "dialogflow"
)

func NewWhatsApp() Provider {
	return &offlineProvider{def: Definition{
		Name:  WhatsApp,
		Title: "WhatsApp Business",
		Required: []Field{
			{Key: "phone_number", Label: "Número do WhatsApp", Phone: true},
			{Key: "api_token", Label: "Token da API", Secret: true},
		},
		Defaults: map[string]any{
			"phone_number":          "",
			"api_token":             "",
			"welcome_message":       "Olá! 👋 Sou o assistente virtual da empresa. Como posso ajudá-lo hoje?",
			"auto_response_message": "Obrigado pela sua mensagem! Vou analisar sua solicitação e responder em breve.",
			"business_start":        "09:00",
			"business_end":          "18:00",
			"out_of_hours_message":  "Nosso horário de atendimento é das 9h às 18h. Sua mensagem será respondida no próximo dia útil.",
		},
	}}
}

func NewTwilio() Provider {
	return &offlineProvider{def: Definition{
		Name:  Twilio,
		Title: "Twilio SMS",
		Required: []Field{
			{Key: "account_sid", Label: "Account SID"},
			{Key: "auth_token", Label: "Auth Token", Secret: true},
			{Key: "phone_number", Label: "Número Twilio", Phone: true},
		},
		Defaults: map[string]any{
			"account_sid":      "",
			"auth_token":       "",
			"phone_number":     "",
			"whatsapp_enabled": false,
			"sms_enabled":      true,
			"auto_response":    false,
			"welcome_message":  "Olá! Bem-vindo ao nosso atendimento. Como posso ajudá-lo hoje?",
		},
	}}
}

func NewOpenAI() Provider {
	return &offlineProvider{def: Definition{
		Name:  OpenAI,
		Title: "OpenAI",
		Required: []Field{
			{Key: "api_key", Label: "API Key", Secret: true},
		},
		Defaults: map[string]any{
			"api_key":       "",
			"model":         "gpt-4",
			"auto_response": false,
			"system_prompt": "Você é um assistente virtual especializado em atendimento ao cliente. Seja prestativo, educado e eficiente.",
		},
	}}
}

func NewDialogflow() Provider {
	return &offlineProvider{def: Definition{
		Name:  Dialogflow,
		Title: "Dialogflow",
		Required: []Field{
			{Key: "project_id", Label: "Project ID"},
			{Key: "service_account_key", Label: "Service Account Key", Secret: true},
		},
		Defaults: map[string]any{
			"project_id":          "",
			"service_account_key": "",
			"language":            "pt-BR",
			"auto_intent":         false,
		},
	}}
}

// Defaults são os quatro painéis na ordem em que aparecem na tela.
func Defaults() []Provider {
	return []Provider{NewWhatsApp(), NewTwilio(), NewOpenAI(), NewDialogflow()}
}
