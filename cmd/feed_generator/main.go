package main

import (
	"time"

	"github.com/Luismorlan/chirper/feed"
	. "github.com/Luismorlan/chirper/utils"
	"github.com/Luismorlan/chirper/utils/dotenv"
	"github.com/Luismorlan/chirper/utils/flag"
	. "github.com/Luismorlan/chirper/utils/log"
	"github.com/DataDog/datadog-go/statsd"
)

const (
	contentEventsQueueName    = "chirper_content_events_queue"
	messageProcessConcurrency = 1
)

func main() {
	flag.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		Log.Fatal("fail to load env : ", err)
	}

	db, err := GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect database : ", err)
	}

	reader, err := NewSQSMessageQueueReader(contentEventsQueueName, 20)
	if err != nil {
		Log.Fatal("fail initialize SQS message queue reader : ", err)
	}

	statsdClient, err := statsd.New("127.0.0.1:8125")
	if err != nil {
		Log.Warn("fail to initialize statsd client, metrics disabled: ", err)
	}

	generator := feed.NewGenerator(db, statsdClient, GetRedisClient())
	processor := feed.NewProcessor(reader, generator)

	for {
		processor.ReadAndProcessMessages(messageProcessConcurrency)

		// Protective delay
		time.Sleep(2 * time.Second)
	}
}
