// Package mqtt defines the broker abstraction used to hand plans to
// greenhouse controllers. The Paho implementation lives in infra/mqtt.
package mqtt
