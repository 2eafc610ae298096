// Package utils provides the ambient plumbing shared by the cement commands:
// the Viper-backed ConfigurationLoader with embedded defaults and CEMENT_* env
// overrides, the zap LoggerFactory, the FlushingWriter feeding live output
// sinks, and the CommandContextAccessor carrying configuration metadata.
package utils
