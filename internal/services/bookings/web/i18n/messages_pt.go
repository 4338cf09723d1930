package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	for _, lang := range []language.Tag{language.BrazilianPortuguese, language.Portuguese} {
		// Chrome
		message.SetString(lang, "app.name", "Reservas de Espaços")
		message.SetString(lang, "nav.create", "Nova Reserva")
		message.SetString(lang, "nav.export", "Exportar")
		message.SetString(lang, "nav.language", "Idioma")
		message.SetString(lang, "lang.en-US", "English")
		message.SetString(lang, "lang.pt-BR", "Português")

		// List
		message.SetString(lang, "list.heading", "Reservas")
		message.SetString(lang, "list.loading", "Carregando...")
		message.SetString(lang, "list.empty", "Nenhum registro encontrado")
		message.SetString(lang, "table.name", "Nome")
		message.SetString(lang, "table.date", "Data da Reserva")
		message.SetString(lang, "table.time", "Horário da Reserva")
		message.SetString(lang, "table.facility", "Espaço")
		message.SetString(lang, "table.status", "Situação")
		message.SetString(lang, "table.action", "Ação")
		message.SetString(lang, "action.edit", "Editar")
		message.SetString(lang, "action.delete", "Excluir")
		message.SetString(lang, "action.change_status", "Alterar Situação")
		message.SetString(lang, "status.APPROVED", "APROVADA")
		message.SetString(lang, "status.CANCELLED", "CANCELADA")

		// Prompts
		message.SetString(lang, "modal.save", "Salvar")
		message.SetString(lang, "modal.close", "Fechar")
		message.SetString(lang, "modal.yes", "Sim")
		message.SetString(lang, "modal.no", "Não")
		message.SetString(lang, "status.title", "Alterar Situação da Reserva")
		message.SetString(lang, "status.label", "Situação:")
		message.SetString(lang, "delete.title", "Confirmar Exclusão")
		message.SetString(lang, "delete.body", "Tem certeza de que deseja excluir esta reserva?")
		message.SetString(lang, "required.title", "Obrigatório")

		// Forms
		message.SetString(lang, "form.create_title", "Nova Reserva")
		message.SetString(lang, "form.edit_title", "Editar Reserva")
		message.SetString(lang, "form.name", "Nome:")
		message.SetString(lang, "form.date", "Data:")
		message.SetString(lang, "form.time", "Horário:")
		message.SetString(lang, "form.facility", "Espaço:")
		message.SetString(lang, "form.submit", "Salvar")
		message.SetString(lang, "form.back", "Voltar")
		message.SetString(lang, "field.Name", "Nome")
		message.SetString(lang, "field.Facility", "Espaço")
		message.SetString(lang, "field.Time", "Horário")
		message.SetString(lang, "field.Date", "Data")
		message.SetString(lang, "field.Status", "Situação")

		// Errors
		message.SetString(lang, "error.required_fields", "%s são campos obrigatórios.")
		message.SetString(lang, "error.invalid_date", "A data deve estar no formato AAAA-MM-DD.")
		message.SetString(lang, "error.invalid_status", "A situação deve ser APROVADA ou CANCELADA.")
		message.SetString(lang, "error.invalid_field", "Alguns campos são inválidos.")
		message.SetString(lang, "error.create_failed", "Falha ao criar a reserva.")
		message.SetString(lang, "error.update_failed", "Falha ao atualizar a reserva.")
		message.SetString(lang, "error.delete_failed", "Falha ao excluir a reserva.")
		message.SetString(lang, "error.fetch_failed", "Erro: Falha ao carregar a reserva")
		message.SetString(lang, "error.list_failed", "Falha ao carregar as reservas.")
		message.SetString(lang, "error.page_title", "Algo deu errado")
		message.SetString(lang, "error.not_found", "Reserva não encontrada")
		message.SetString(lang, "error.back_to_list", "Voltar para reservas")

		// Export
		message.SetString(lang, "export.sheet", "Reservas")
		message.SetString(lang, "export.id", "ID")
		message.SetString(lang, "export.created_at", "Criada em")
		message.SetString(lang, "export.updated_at", "Atualizada em")
	}
}
