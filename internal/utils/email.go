package utils

import (
	"log"

	"github.com/wneessen/go-mail"
)

type mailerConfig struct {
	host     string
	username string
	password string
	from     string
}

var mailer mailerConfig

// InitMailer fixe la configuration SMTP, une seule fois au démarrage.
func InitMailer(host, username, password, from string) {
	mailer = mailerConfig{host: host, username: username, password: password, from: from}
}

// SendEmail envoie un email HTML. Best-effort : l'appelant décide si une
// erreur d'envoi doit bloquer son traitement.
func SendEmail(to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	if err := msg.From(mailer.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(mailer.host,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(mailer.username),
		mail.WithPassword(mailer.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}
