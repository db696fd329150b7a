package logger

import (
	"encoding/json"
	"log"
	"os"
)

func Init() {
	log.SetOutput(os.Stdout)
	log.SetFlags(0)
	log.Printf(`{"level":"INFO","msg":"logger initialized"}`)
}

func Info(msg string, fields map[string]any) {
	emit("INFO", msg, fields)
}

func Warn(msg string, fields map[string]any) {
	emit("WARN", msg, fields)
}

func Error(msg string, fields map[string]any) {
	emit("ERROR", msg, fields)
}

func Fatal(msg string, fields map[string]any) {
	emit("FATAL", msg, fields)
	os.Exit(1)
}

func emit(level, msg string, fields map[string]any) {
	if fields == nil {
		log.Printf(`{"level":%q,"msg":%q}`, level, msg)
		return
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		log.Printf(`{"level":%q,"msg":%q,"fields":"unencodable"}`, level, msg)
		return
	}
	log.Printf(`{"level":%q,"msg":%q,"fields":%s}`, level, msg, encoded)
}
