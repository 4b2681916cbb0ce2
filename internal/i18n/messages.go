package i18n

var catalog = map[Lang]map[string]string{
	English: {
		"shop_now":            "Shop Now",
		"find_style":          "Find Your Perfect Style.",
		"track":               "Track Order",
		"pay_at_door":         "Cash on Delivery",
		"confirm":             "Confirm My Order",
		"clear":               "Clear Bag",
		"search":              "Search products...",
		"related":             "You Might Also Like",
		"like":                "Like",
		"share":               "Share",
		"comments":            "Reviews",
		"post":                "Post Comment",
		"scarcity":            "Only {stock} left in stock!",
		"orders":              "Orders",
		"revenue":             "Revenue",
		"export":              "Export CSV",
		"summary":             "Summary",
		"total":               "Total",
		"subtotal":            "Subtotal",
		"shipping":            "Shipping",
		"shipping_details":    "Shipping Details",
		"full_name":           "Full Name",
		"phone_number":        "Phone (05/06/07...)",
		"select_wilaya":       "Select Wilaya",
		"commune_label":       "Commune / Municipality",
		"address_placeholder": "Exact House Address...",
		"order_success":       "Confirmed!",
		"thank_you":           "We will contact you soon.",
		"home":                "Home",
		"return_home":         "Return Home",
		"added_to_bag":        "Added to Bag",
		"link_copied":         "Link Copied",
		"liked":               "Added to Wishlist",
		"removed":             "Removed from Wishlist",
		"fill_details":        "Please enter a valid Name and Phone Number",
		"select_location":     "Please select your Wilaya and Commune",
		"bag_empty":           "Your bag is empty",
		"error_saving":        "Error saving order. Try again.",
		"not_found":           "Order not found.",
		"admin_title":         "shopyz Admin",
		"product":             "Product",
		"stock":               "Stock",
		"action":              "Action",
		"delete":              "Delete",
		"update":              "Update",
		"find_order":          "Find Order",
		"delivered_revenue":   "Delivered Revenue",
		"all_orders":          "All Orders",
		"csv":                 "CSV",
		"status":              "Status",
		"phone_number_simple": "Phone number",
		"add_product":         "Add Product",
		"title_label":         "Title",
		"price_label":         "Price",
		"desc_label":          "Description",
		"images_label":        "Product Images",
		"upload_images":       "Select from Device",
		"cancel":              "Cancel",
		"save":                "Save",
		"delivery_method":     "Delivery Method",
		"stop_desk":           "Stop Desk (Office Pickup)",
		"home_delivery":       "Home Delivery",
		"free":                "Free",
		"confirm_clear":       "Are you sure you want to clear your bag?",
		"wishlist":            "Wishlist",
		"empty_wishlist":      "Your wishlist is empty",
		"new_arrivals":        "New Arrivals",
		"view_all":            "View All",
		"sort_by":             "Sort by",
		"newest":              "Newest",
		"price_low":           "Price: Low to High",
		"price_high":          "Price: High to Low",
	},
	Arabic: {
		"shop_now":            "تسوق الآن",
		"find_style":          "اكتشف أسلوبك المثالي.",
		"track":               "تتبع الطلب",
		"pay_at_door":         "الدفع عند الاستلام",
		"confirm":             "تأكيد الطلب",
		"clear":               "تفريغ الحقيبة",
		"search":              "ابحث عن منتج...",
		"related":             "قد يعجبك أيضاً",
		"like":                "أعجبني",
		"share":               "مشاركة",
		"comments":            "التعليقات",
		"post":                "نشر",
		"scarcity":            "بقي {stock} قطع فقط!",
		"orders":              "طلبيات",
		"revenue":             "الأرباح",
		"export":              "تحميل ملف CSV",
		"summary":             "ملخص",
		"total":               "المجموع",
		"subtotal":            "المبلغ الأولي",
		"shipping":            "التوصيل",
		"shipping_details":    "معلومات التوصيل",
		"full_name":           "الاسم الكامل",
		"phone_number":        "رقم الهاتف (05/06/07...)",
		"select_wilaya":       "اختر الولاية",
		"commune_label":       "البلدية",
		"address_placeholder": "العنوان بالتدقيق...",
		"order_success":       "تم التأكيد!",
		"thank_you":           "سنتصل بك قريباً.",
		"home":                "الرئيسية",
		"return_home":         "العودة للرئيسية",
		"added_to_bag":        "تمت الإضافة للسلة",
		"link_copied":         "تم نسخ الرابط",
		"liked":               "تم الإعجاب",
		"removed":             "تمت الإزالة",
		"fill_details":        "يرجى إدخال اسم ورقم هاتف صحيحين",
		"select_location":     "يرجى اختيار الولاية والبلدية",
		"bag_empty":           "حقيبتك فارغة",
		"error_saving":        "خطأ في حفظ الطلب. حاول مرة أخرى.",
		"not_found":           "لم يتم العثور على الطلب",
		"admin_title":         "لوحة التحكم",
		"product":             "المنتج",
		"stock":               "المخزون",
		"action":              "إجراء",
		"delete":              "حذف",
		"update":              "تحديث",
		"find_order":          "البحث عن الطلب",
		"delivered_revenue":   "العائدات (تم التوصيل)",
		"all_orders":          "كل الطلبات",
		"csv":                 "ملف CSV",
		"status":              "الحالة",
		"phone_number_simple": "رقم الهاتف",
		"add_product":         "إضافة منتج",
		"title_label":         "العنوان",
		"price_label":         "السعر",
		"desc_label":          "الوصف",
		"images_label":        "صور المنتج",
		"upload_images":       "اختر من الجهاز",
		"cancel":              "إلغاء",
		"save":                "حفظ",
		"delivery_method":     "طريقة التوصيل",
		"stop_desk":           "توصيل للمكتب (Stop Desk)",
		"home_delivery":       "توصيل للمنزل",
		"free":                "مجاني",
		"confirm_clear":       "هل أنت متأكد من تفريغ الحقيبة؟",
		"wishlist":            "المفضلة",
		"empty_wishlist":      "قائمة المفضلة فارغة",
		"new_arrivals":        "وصل حديثاً",
		"view_all":            "عرض الكل",
		"sort_by":             "ترتيب حسب",
		"newest":              "الأحدث",
		"price_low":           "السعر: الأقل إلى الأعلى",
		"price_high":          "السعر: الأعلى إلى الأقل",
	},
}
