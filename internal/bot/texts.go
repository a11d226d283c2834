package bot

import "fmt"

// Callback data
const (
	cbYes            = "yes"
	cbNo             = "no"
	cbBack           = "back"
	cbRegister       = "register"
	cbAdminChange    = "admin_change"
	cbAdminBroadcast = "admin_broadcast"
	cbAdminPreMsg    = "admin_premsg"
)

// cancelWord ends the registration form when typed at any step
const cancelWord = "Відміна"

// invisible is sent to carry a keyboard removal and deleted right away
const invisible = "\u2063"

const (
	textGreeting    = "Вітаю! Щоб отримати безкоштовне запрошення на вечірку, натисни команду /starts в меню."
	textDecline     = "Зрозуміло! Тоді чекаємо тебе наступного разу, або ж передумай та приходь!"
	textAskName     = "Введіть ваше ім'я:"
	textAskPhone    = "Введіть номер телефону або поділіться контактом:"
	textBadPhone    = "Будь ласка, введіть коректний номер телефону у форматі +380XXXXXXXXX."
	textAskUsername = "Введіть ваш Telegram нік (через @):"
	textBadUsername = "Будь ласка, введіть ваш Telegram нік, який починається з @."
	textAskSource   = "Де ви побачили інформацію про вечірку?\n(наприклад: інстаграм реклама, інстаграм сторінка, телеграм канал Холі, інший телеграм канал)"
	textThanks      = "Дякуємо за реєстрацію, чекаємо вас на вході для перевірки інформації 🫶🏻"
	textSocial      = "Залишайся з ботом до самої вечірки, адже через нього тобі будуть надходити важливі повідомлення щодо деталей заходу!\n\n" +
		"Підпишись на наші соціальні мережі та будь в курсі новин 👇🏻"
	textCancelled       = "Реєстрацію скасовано."
	textNothingToCancel = "Немає активної операції для скасування."
	textUnknownCommand  = "Невідома команда. Натисни /starts, щоб отримати запрошення."
	textError           = "Сталася помилка. Спробуйте ще раз."

	textNoAccess          = "Ви не маєте доступу до цієї команди."
	textAdminMenu         = "Адмін панель:"
	textAskDate           = "Введіть нову дату заходу (формат дд.мм):"
	textAskTime           = "Введіть новий час заходу (формат гг:хх):"
	textAskLocation       = "Введіть нову локацію:"
	textEventUpdated      = "Інформація про захід оновлена!"
	textAskBroadcast      = "Введіть текст повідомлення для розсилки:"
	textNoRecipients      = "Немає користувачів для розсилки."
	textRecipientsFailed  = "Не вдалося отримати список користувачів."
	textBroadcastDone     = "Розсилка завершена. Повідомлення відправлено %d користувачам."
	textAdminCancelled    = "Адмін операцію скасовано."
	textPreMsgCurrent     = "Поточне повідомлення перед реєстрацією:\n\n%s\n\nВведіть новий текст:"
	textPreMsgEmpty       = "Повідомлення перед реєстрацією ще не задано.\n\nВведіть новий текст:"
	textPreMsgUpdated     = "Повідомлення перед реєстрацією оновлено!"
	textPreMsgSaveFailed  = "Не вдалося зберегти повідомлення. Спробуйте пізніше."
	textInvitationPattern = "Привіт! Запрошую тебе на вечірку в %s, %s, початок о %s\n%s\n\nЧи будеш ти з нами?"
)

// Social links shown after a completed registration
const (
	linkChannel   = "https://t.me/holytusa"
	linkChat      = "https://t.me/+yOxlMtK2JDZlNWUy"
	linkInstagram = "https://www.instagram.com/holy.tusa"
)

// invitationText renders the invitation for the current event
func (b *Bot) invitationText() string {
	s := b.settings.Current()
	return fmt.Sprintf(textInvitationPattern, Weekday(s.Date, b.now()), s.Date, s.Time, s.Location)
}

func invitationKeyboard() InlineKeyboard {
	return InlineKeyboard{{
		{Text: "Так", Data: cbYes},
		{Text: "Ні", Data: cbNo},
	}}
}

func declineKeyboard() InlineKeyboard {
	return InlineKeyboard{{{Text: "Назад", Data: cbBack}}}
}

func registerKeyboard() InlineKeyboard {
	return InlineKeyboard{{{Text: "Зареєструватися", Data: cbRegister}}}
}

func socialKeyboard() InlineKeyboard {
	return InlineKeyboard{
		{{Text: "Телеграм канал з додатковою інформацією", URL: linkChannel}},
		{{Text: "Чат для спілкування та знайомств", URL: linkChat}},
		{{Text: "Instagram", URL: linkInstagram}},
	}
}

func adminKeyboard() InlineKeyboard {
	return InlineKeyboard{
		{{Text: "Змінити інформацію про захід", Data: cbAdminChange}},
		{{Text: "Розсилка", Data: cbAdminBroadcast}},
		{{Text: "Змінити повідомлення перед реєстрацією", Data: cbAdminPreMsg}},
	}
}

func phoneKeyboard() *ReplyKeyboard {
	return &ReplyKeyboard{
		Rows: [][]ReplyButton{
			{{Text: "Поділитись контактом", RequestContact: true}},
			{{Text: cancelWord}},
		},
		Resize: true,
	}
}

func cancelKeyboard() *ReplyKeyboard {
	return &ReplyKeyboard{
		Rows:   [][]ReplyButton{{{Text: cancelWord}}},
		Resize: true,
	}
}
