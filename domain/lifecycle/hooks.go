package lifecycle

// Hooks 业务扩展点，以值的方式注入服务（取代模板方法继承）。
// 三个扩展点均可为 nil，缺省分别为无操作 / 恒等 / 恒等。
// 执行顺序固定：Validate → PreSave → 持久化 → PostSave。
type Hooks[T any] struct {
	// Validate 业务校验，拒绝时应返回 domain.NewValidationError 构造的错误
	Validate func(e T) error

	// PreSave 持久化前的规范化处理（如去空格、小写化）
	PreSave func(e T) T

	// PostSave 持久化后的补充处理
	PostSave func(e T) T
}

func (h Hooks[T]) validate(e T) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate(e)
}

func (h Hooks[T]) preSave(e T) T {
	if h.PreSave == nil {
		return e
	}
	return h.PreSave(e)
}

func (h Hooks[T]) postSave(e T) T {
	if h.PostSave == nil {
		return e
	}
	return h.PostSave(e)
}

// Chain 组合多组扩展点：Validate 依序全部执行（先失败先返回），
// PreSave / PostSave 依序串联。用于派生领域在基础规则之上叠加自身规则。
func Chain[T any](hooks ...Hooks[T]) Hooks[T] {
	chained := hooks
	return Hooks[T]{
		Validate: func(e T) error {
			for _, h := range chained {
				if err := h.validate(e); err != nil {
					return err
				}
			}
			return nil
		},
		PreSave: func(e T) T {
			for _, h := range chained {
				e = h.preSave(e)
			}
			return e
		},
		PostSave: func(e T) T {
			for _, h := range chained {
				e = h.postSave(e)
			}
			return e
		},
	}
}
