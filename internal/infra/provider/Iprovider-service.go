package provider

type IWhatsAppProvider interface {
	SendTextMessage(to, message string) error
	SendTemplateMessage(to, templateName string) error
}
