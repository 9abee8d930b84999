package services

// Menu identifiers recorded in the last-menu recovery hint.
const (
	MenuRoot  = "root"
	MenuPonto = "ponto"
	MenuFolha = "folha"
)

// MenuAction is what a digit does inside a submenu. Keeping the action
// explicit separates the transition logic from the copy text below.
type MenuAction int

const (
	// ActionShowGuide sends a step-by-step guide and asks about returning to
	// the root menu.
	ActionShowGuide MenuAction = iota
	// ActionEscalate starts the human handover path.
	ActionEscalate
	// ActionBackToRoot leaves the submenu and resends the root menu.
	ActionBackToRoot
)

type menuOption struct {
	action MenuAction
	guide  string
}

// pontoOptions maps the digits of the Ponto submenu to their actions.
var pontoOptions = map[string]menuOption{
	"1": {action: ActionShowGuide, guide: guideRegistrarPonto},
	"2": {action: ActionShowGuide, guide: guideEspelhoPonto},
	"3": {action: ActionShowGuide, guide: guideAbono},
	"4": {action: ActionShowGuide, guide: guideCancelarBatida},
	"5": {action: ActionShowGuide, guide: guideIncluirBatida},
	"6": {action: ActionShowGuide, guide: guideAtestado},
	"7": {action: ActionEscalate},
	"8": {action: ActionBackToRoot},
}

// folhaOptions maps the digits of the Folha & Benefícios submenu.
var folhaOptions = map[string]menuOption{
	"1": {action: ActionShowGuide, guide: guideHistPagamentos},
	"2": {action: ActionShowGuide, guide: guideHistSalarial},
	"3": {action: ActionShowGuide, guide: guideInforme},
	"4": {action: ActionEscalate},
	"5": {action: ActionBackToRoot},
}

// menuOptions returns the action table for a submenu id.
func menuOptions(menu string) map[string]menuOption {
	switch menu {
	case MenuPonto:
		return pontoOptions
	case MenuFolha:
		return folhaOptions
	default:
		return nil
	}
}

// Copy text. Presentation only; transitions never depend on these strings.

const msgWelcome = "Olá 👋, eu sou o assistente virtual do RH."

const msgRootMenu = "O que você deseja fazer hoje?\n\n" +
	"1️⃣ Informações sobre Ponto (Multi / My Ahgora)\n\n" +
	"2️⃣ Folha & Benefícios (Meu RH)\n\n" +
	"3️⃣ Dúvidas sobre holerite\n\n" +
	"4️⃣ Falar com atendente"

const msgPontoMenu = "Por favor, escolha uma opção:\n\n" +
	"1️⃣ Registrar ponto\n\n" +
	"2️⃣ Consultar ponto\n\n" +
	"3️⃣ Solicitar abonamento de horas\n\n" +
	"4️⃣ Cancelar batida de ponto\n\n" +
	"5️⃣ Incluir batida de ponto\n\n" +
	"6️⃣ Enviar atestado\n\n" +
	"7️⃣ Falar com atendente\n\n" +
	"8️⃣ Retornar ao menu inicial"

const msgFolhaMenu = "Por favor, escolha uma opção:\n\n" +
	"1️⃣ Acessar histórico de pagamentos\n\n" +
	"2️⃣ Consultar histórico salarial\n\n" +
	"3️⃣ Consultar informe de rendimentos\n\n" +
	"4️⃣ Falar com atendente\n\n" +
	"5️⃣ Retornar ao menu inicial"

const msgAskBack = "Deseja voltar ao Menu Inicial?\n\nSim\n\nNão"

const msgThanks = "Atendimento encerrado. Obrigado por entrar em contato com o RH! " +
	"Se precisar de mais informações, é só mandar uma nova mensagem. 😉"

const msgAskHandover = "Como posso te ajudar agora?\n\n" +
	"1️⃣ Retornar ao Menu inicial\n\n" +
	"2️⃣ Aguardar o atendimento humano"

// msgHandover never reveals the queue position to the party; the position
// shows up only on the admin panel and in the operator email.
const msgHandover = "🔄 Encaminhando para um atendente humano. Nosso time responderá em até 24 horas."

const msgAskName = "Antes de falar com um atendente, me diga seu *nome*, por favor 🙂"

const msgAskNameAgain = "Pode me dizer seu nome, por favor? 🙂"

const msgUnrecognized = "Não consegui identificar sua resposta."

const msgUnrecognizedYesNo = `Não consegui identificar. Responda com "sim" ou "não".`

const msgHoleritePrompt = "Escreva a sua dúvida e envie um print de seu holerite " +
	"para que eu possa te direcionar ao atendimento humano"

const msgHoleriteNeedText = "Recebi sua imagem. Agora, por favor, escreva a sua dúvida em texto."

const msgHoleriteNeedImage = "Recebi sua mensagem. Agora, por favor, envie um print (imagem) do seu holerite."

const guideRegistrarPonto = "*Passo a passo para bater o ponto:*\n\n" +
	"🔷 No seu smartphone, abra o aplicativo Multi.\n" +
	"🔷 Na tela inicial, toque no botão *REGISTRAR PONTO*.\n" +
	"🔷 Coloque a senha do smartphone para confirmar a batida.\n" +
	"🔷 Após a confirmação, um comprovante de ponto poderá ser fornecido.\n\n" +
	"*Acesse o vídeo com o tutorial:*\n⏯️ (link do tutorial)"

const guideEspelhoPonto = "*Passo a passo para acessar o espelho de ponto:*\n\n" +
	"🔷 Na tela de login do aplicativo, insira o código da empresa, sua matrícula e senha.\n" +
	"🔷 Toque em *Acessar espelho detalhado*.\n" +
	"🔷 Toque em *Trocar competência* e escolha o ano e mês desejados.\n\n" +
	"*Acesse o vídeo com o tutorial:*\n⏯️ (link do tutorial)"

const guideAbono = "*Passo a passo para solicitar um abono:*\n\n" +
	"🔷 Abra o aplicativo My Ahgora e toque em *Solicitar abono*.\n" +
	"🔷 Selecione o motivo e o período do abono.\n" +
	"🔷 Justifique no campo Mensagem e anexe o arquivo (como um atestado médico).\n" +
	"🔷 Toque em *Enviar Solicitação de abono*.\n\n" +
	"*Acesse o vídeo com o tutorial:*\n⏯️ (link do tutorial)"

const guideCancelarBatida = "*Passo a passo para solicitar o cancelamento de uma batida de ponto*\n\n" +
	"⚠️ O cancelamento só pode ser realizado no mesmo dia da marcação.\n\n" +
	"🔷 Abra o aplicativo My Ahgora e toque em *Cancelar Batida*.\n" +
	"🔷 Selecione o horário e o motivo.\n" +
	"🔷 Digite a mensagem obrigatória para o seu gestor ou RH e envie.\n\n" +
	"*Acesse o vídeo com o tutorial:*\n⏯️ (link do tutorial)"

const guideIncluirBatida = "*Passo a passo para solicitar a inclusão de uma batida de ponto*\n\n" +
	"🔷 Abra o aplicativo My Ahgora e toque em *Incluir Batida*.\n" +
	"🔷 Selecione a data, o horário e o motivo.\n" +
	"🔷 Digite a mensagem obrigatória para o seu gestor ou RH e envie.\n\n" +
	"*Acesse o vídeo com o tutorial:*\n⏯️ (link do tutorial)"

const guideAtestado = "*Passo a passo para enviar atestado:*\n\n" +
	"🔷 Abra o app ou portal Meu RH e acesse a aba *Atestado*.\n" +
	"🔷 Preencha o tipo de atestado e o motivo do afastamento.\n" +
	"🔷 Anexe a foto do atestado ou um PDF escaneado em *Anexar Arquivo*.\n" +
	"🔷 Escreva uma justificativa e confirme o envio.\n\n" +
	"*Acesse o vídeo com o tutorial:*\n⏯️ (link do tutorial)"

const guideHistPagamentos = "*Passo a passo para acessar histórico de pagamentos:*\n\n" +
	"🔷 Abra o aplicativo Meu RH e acesse a aba *Pagamentos*.\n" +
	"🔷 Selecione *Envelope de Pagamento* e escolha o período desejado.\n" +
	"🔷 O envelope poderá ser baixado em formato PDF.\n\n" +
	"*Acesse o vídeo com o tutorial:*\n⏯️ (link do tutorial)"

const guideHistSalarial = "*Passo a passo para consultar o histórico salarial:*\n\n" +
	"🔷 Abra o app ou portal Meu RH e acesse a aba *Pagamentos*.\n" +
	"🔷 Acesse *Histórico Salarial* para ver as alterações desde a admissão.\n\n" +
	"*Obs:* use filtros para buscar por período ou motivo específico.\n\n" +
	"*Acesse o vídeo com o tutorial:*\n⏯️ (link do tutorial)"

const guideInforme = "*Passo a passo para consultar informe de rendimentos*\n\n" +
	"🔷 Abra o app ou portal Meu RH e acesse a aba *Pagamentos*.\n" +
	"🔷 Acesse *Informe de Rendimentos* para consultar, baixar ou compartilhar.\n\n" +
	"*Acesse o vídeo com o tutorial:*\n⏯️ (link do tutorial)"

// menuText returns the copy for a submenu id.
func menuText(menu string) string {
	switch menu {
	case MenuPonto:
		return msgPontoMenu
	case MenuFolha:
		return msgFolhaMenu
	default:
		return msgRootMenu
	}
}
