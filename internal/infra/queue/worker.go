package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadNotifier pushes a new-enquiry alert to the sales WhatsApp number.
type LeadNotifier interface {
	SendLeadAlert(payload LeadCapturedPayload) error
}

// AgentMailer emails the enquiry to the agent inbox.
type AgentMailer interface {
	SendLeadNotification(payload LeadCapturedPayload) error
}

// Worker consumes lead.captured events and fans them out to WhatsApp and
// email. Either channel failing independently is tolerated; only a total
// failure dead-letters the message.
type Worker struct {
	Channel  *amqp.Channel
	Notifier LeadNotifier
	Mailer   AgentMailer
}

func NewWorker(ch *amqp.Channel, notifier LeadNotifier, mailer AgentMailer) *Worker {
	return &Worker{Channel: ch, Notifier: notifier, Mailer: mailer}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("registering RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadCapturedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[worker] malformed payload, dead-lettering: %s", err)
				// Poison message; requeueing would just loop it.
				d.Nack(false, false)
				continue
			}

			log.Printf("[worker] new lead %s (%s) via %s", payload.Name, payload.Phone, payload.Source)

			if w.process(payload) {
				d.Ack(false)
			} else {
				d.Nack(false, false)
			}
		}
	}()

	log.Printf("[worker] waiting on queue %q", queueName)
	<-forever
}

func (w *Worker) process(payload LeadCapturedPayload) bool {
	delivered := false

	if w.Notifier != nil {
		if err := w.Notifier.SendLeadAlert(payload); err != nil {
			log.Printf("[worker] whatsapp alert failed: %s", err)
		} else {
			delivered = true
		}
	}

	if w.Mailer != nil {
		if err := w.Mailer.SendLeadNotification(payload); err != nil {
			log.Printf("[worker] agent email failed: %s", err)
		} else {
			delivered = true
		}
	}

	return delivered
}
