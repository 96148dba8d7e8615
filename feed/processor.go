package feed

import (
	"encoding/json"
	"sync"

	Logger "github.com/Luismorlan/chirper/utils/log"

	"github.com/Luismorlan/chirper/utils"
)

// Processor drains content-creation events from a durable queue and
// feeds them to the generator. It is the out-of-process counterpart of
// Generator.Run: same semantics, but the events arrive over SQS instead
// of the in-process bus.
type Processor struct {
	reader    utils.MessageQueueReader
	generator *Generator
}

func NewProcessor(reader utils.MessageQueueReader, generator *Generator) *Processor {
	return &Processor{reader: reader, generator: generator}
}

// ReadAndProcessMessages long-polls one batch and processes it with the
// given concurrency. A message is deleted only after it is handled, so
// a crashed worker redelivers instead of losing the event.
func (p *Processor) ReadAndProcessMessages(maxNumberOfMessages int64) {
	msgs, err := p.reader.ReceiveMessages(maxNumberOfMessages)
	if err != nil {
		Logger.Log.Errorf("fail to receive messages from queue, error: %s", err)
		return
	}

	var wg sync.WaitGroup
	for _, msg := range msgs {
		wg.Add(1)
		go func(msg *utils.MessageQueueMessage) {
			defer wg.Done()
			p.processMessage(msg)
		}(msg)
	}
	wg.Wait()
}

func (p *Processor) processMessage(msg *utils.MessageQueueMessage) {
	body, err := msg.Read()
	if err != nil {
		Logger.Log.Errorf("fail to read message %v, error: %s", msg.MessageId, err)
		return
	}

	var ev ContentEvent
	if err := json.Unmarshal([]byte(body), &ev); err != nil {
		Logger.Log.Errorf("fail to decode content event %v, error: %s", msg.MessageId, err)
		p.generator.count("decode_failure")
		// Malformed payloads never become valid, drop them.
		p.delete(msg)
		return
	}

	if err := p.generator.Handle(ev); err != nil {
		Logger.Log.Errorf("fail to generate news feed for event %+v, error: %s", ev, err)
		p.generator.count("failure")
		return
	}
	p.generator.count("success")
	p.delete(msg)
}

func (p *Processor) delete(msg *utils.MessageQueueMessage) {
	if err := p.reader.DeleteMessage(msg); err != nil {
		Logger.Log.Errorf("fail to delete message %v, error: %s", msg.MessageId, err)
	}
}
