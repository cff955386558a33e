// Package logger builds *slog.Logger instances from functional options and
// injects request-scoped attributes (such as the request id) stored in
// context.Context.
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "ibankit"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "iban checked", logger.IBAN(i), logger.Valid(i.IsValid()))
//
// Attribute helpers in attr.go keep key names consistent. logger.IBAN masks
// the account number; iban.IBAN also implements slog.LogValuer, so passing
// the value directly is masked as well.
package logger
