package engine

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// HostModuleName is the import namespace compiled modules use to reach
// the runtime ABI.
const HostModuleName = "aot:runtime"

func (e *Engine) ensureHostModule(ctx context.Context) error {
	e.hostOnce.Do(func() {
		_, e.hostErr = e.runtime.NewHostModuleBuilder(HostModuleName).
			NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(e.attrSet),
				[]api.ValueType{api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI32},
				nil).
			Export("attr_set").
			NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(e.importModule),
				[]api.ValueType{api.ValueTypeI32, api.ValueTypeI32},
				[]api.ValueType{api.ValueTypeI32}).
			Export("import").
			NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(e.guestTrace),
				[]api.ValueType{api.ValueTypeI32, api.ValueTypeI32},
				nil).
			Export("trace").
			Instantiate(ctx)
	})
	return e.hostErr
}

// attr_set(name_ptr, name_len, val_ptr, val_len) writes a string
// attribute into the namespace of the module under execution.
func (e *Engine) attrSet(ctx context.Context, m api.Module, stack []uint64) {
	cur := e.current
	if cur == nil {
		return
	}

	name, ok := readString(m, uint32(stack[0]), uint32(stack[1]))
	if !ok {
		return
	}
	val, ok := readString(m, uint32(stack[2]), uint32(stack[3]))
	if !ok {
		return
	}

	// Sealed attributes refuse the write; cosmetic for guest code.
	_ = cur.mod.SetAttr(name, val)
}

// import(name_ptr, name_len) -> i32 resolves a dotted name through the
// host import machinery. Returns 1 on success, 0 otherwise.
func (e *Engine) importModule(ctx context.Context, m api.Module, stack []uint64) {
	name, ok := readString(m, uint32(stack[0]), uint32(stack[1]))
	if !ok || e.importer == nil {
		stack[0] = 0
		return
	}

	if err := e.importer(ctx, name); err != nil {
		Logger().Warn("guest import failed",
			zap.String("module", name),
			zap.Error(err))
		stack[0] = 0
		return
	}
	stack[0] = 1
}

// trace(msg_ptr, msg_len) emits a guest diagnostic line.
func (e *Engine) guestTrace(ctx context.Context, m api.Module, stack []uint64) {
	msg, ok := readString(m, uint32(stack[0]), uint32(stack[1]))
	if !ok {
		return
	}

	fields := []zap.Field{zap.String("msg", msg)}
	if cur := e.current; cur != nil {
		fields = append(fields, zap.String("module", cur.mod.Name()))
	}
	Logger().Debug("guest trace", fields...)
}

func readString(m api.Module, ptr, length uint32) (string, bool) {
	mem := m.Memory()
	if mem == nil {
		return "", false
	}
	b, ok := mem.Read(ptr, length)
	if !ok {
		return "", false
	}
	return string(b), true
}
