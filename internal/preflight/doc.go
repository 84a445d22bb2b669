// Package preflight is the validation gate run before a fio benchmark is
// launched.
//
// It is split into three parts:
//
//   - Environment confirms that fio is installed, that it is a 3.x release
//     and that stdout can carry UTF-8.
//   - Resolver checks that a target path matches its declared kind (file,
//     device, directory or rbd) and returns the fio option to pass it with.
//   - Validator runs a fixed, ordered list of checks over a config.Settings
//     bundle and stops at the first violation.
//
// Every violation is a *Failure carrying a stable exit code. The package
// never exits the process itself; callers map errors to a status with
// ExitCode.
//
// Example:
//
//	v := preflight.New(preflight.WithLogger(logger))
//	result, err := v.Validate(ctx, settings)
//	if err != nil {
//	    os.Exit(preflight.ExitCode(err))
//	}
//	fmt.Println(result.Parameter)
package preflight
