package utilities

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger é o logger compartilhado pelos pacotes do serviço.
var Logger = logrus.New()

// ErrorContext carrega quem estava operando quando um erro aconteceu.
// É passado explicitamente para cada chamada, nunca guardado em estado global.
type ErrorContext struct {
	UserUID   string
	ClinicID  string
	RequestID string
}

func (c ErrorContext) fields() logrus.Fields {
	f := logrus.Fields{}
	if c.UserUID != "" {
		f["user_uid"] = c.UserUID
	}
	if c.ClinicID != "" {
		f["clinic_id"] = c.ClinicID
	}
	if c.RequestID != "" {
		f["request_id"] = c.RequestID
	}
	return f
}

// InitLogger inicializa o logger com o nível informado ("debug", "info", ...)
func InitLogger(level string) {
	InitLoggerWithOutput(level, os.Stdout)
}

// InitLoggerWithOutput permite redirecionar a saída (usado nos testes)
func InitLoggerWithOutput(level string, out io.Writer) {
	Logger.SetOutput(out)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000000",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		Logger.WithField("level", level).Warn("Nível de log inválido, usando info")
	}
	Logger.SetLevel(lvl)
}

// LogRequest registra informações sobre a requisição HTTP
func LogRequest(method, path, remoteAddr string, status int, duration time.Duration) {
	Logger.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"remote":   remoteAddr,
		"status":   status,
		"duration": duration,
	}).Info("request")
}

// LogError registra erros com o contexto da operação
func LogError(err error, context string) {
	Logger.WithError(err).Error(context)
}

// LogErrorWithContext registra o erro junto com usuário/clínica/requisição
func LogErrorWithContext(err error, ectx ErrorContext, context string) {
	Logger.WithFields(ectx.fields()).WithError(err).Error(context)
}

// LogWarn registra avisos que não interrompem o fluxo
func LogWarn(format string, v ...interface{}) {
	Logger.Warnf(format, v...)
}

// LogDebug registra informações de debug
func LogDebug(format string, v ...interface{}) {
	Logger.Debugf(format, v...)
}

// LogInfo registra informações gerais
func LogInfo(format string, v ...interface{}) {
	Logger.Infof(format, v...)
}
