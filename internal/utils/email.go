package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"luxe_back_end/internal/models"
)

// WarnIfNoSMTP signale au démarrage que les emails de confirmation sont désactivés.
func WarnIfNoSMTP() {
	if os.Getenv("SMTP_HOST") == "" {
		log.Println("⚠️  SMTP non configuré : emails de confirmation désactivés")
	}
}

// SendOrderConfirmation envoie l'email de confirmation de commande. Best effort :
// si le SMTP n'est pas configuré on ne fait rien, et un échec d'envoi ne doit
// jamais faire échouer la commande (l'appelant se contente de logger).
func SendOrderConfirmation(to string, order models.Order) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(os.Getenv("SMTP_FROM")); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Confirmation de votre commande " + order.ID)
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(order))

	client, err := mail.NewClient(host,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de confirmation à", to)
	return client.DialAndSend(msg)
}

func orderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>₹%.2f</td>
				<td>₹%.2f</td>
			</tr>`, item.ProductName, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Confirmation de commande</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande <strong>%s</strong> a bien été enregistrée.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left;">Produit</th>
					<th style="padding: 10px; text-align: left;">Quantité</th>
					<th style="padding: 10px; text-align: left;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>
		<p><strong>Total : ₹%.2f</strong></p>
		<p>Statut : %s</p>
	</div>
</body>
</html>`, order.ID, itemsHTML, order.TotalAmount, order.TrackingStatus)
}
